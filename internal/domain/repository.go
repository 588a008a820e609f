package domain

import "time"

// Repository is an organization repository as reported by the source-control host.
type Repository struct {
	Name       string
	OwnerLogin string
	Archived   bool
}

// Commit holds the parts of a compared commit the reminder cares about.
// Any field may be empty when the host omits it.
type Commit struct {
	AuthorLogin   string
	CommitterName string
	CommitterDate *time.Time
}

// BranchComparison is the difference between a head and a base branch.
// Commits keep the order returned by the host; index 0 is the oldest.
type BranchComparison struct {
	ChangedFiles []string
	Commits      []Commit
}

// CompareRequest identifies a single branch comparison.
type CompareRequest struct {
	Owner string
	Repo  string
	Base  string
	Head  string
}

// RepoInfo summarizes a repository whose head branch has pending commits.
type RepoInfo struct {
	RepoName     string
	CommitsCount int
	Authors      []string
	DelayDays    int
}
