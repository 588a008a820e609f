package usecase

import (
	"time"

	"github.com/compozy/rcbot/internal/domain"
)

// MergeBotCommitter is the committer name GitHub uses for merges it performs
// itself. Such commits are not pending work.
const MergeBotCommitter = "Github"

// BuildRepoInfo reduces a settled comparison to the report entry for repo.
// The second return value is false when the repository is up to date,
// archived, or its comparison failed.
func BuildRepoInfo(repo domain.Repository, res domain.Result[*domain.BranchComparison], now time.Time) (domain.RepoInfo, bool) {
	if !res.Ok() || res.Value == nil || repo.Archived {
		return domain.RepoInfo{}, false
	}
	comparison := res.Value
	if len(comparison.ChangedFiles) == 0 {
		return domain.RepoInfo{}, false
	}
	commits := make([]domain.Commit, 0, len(comparison.Commits))
	for _, c := range comparison.Commits {
		if c.CommitterName == MergeBotCommitter {
			continue
		}
		commits = append(commits, c)
	}
	if len(commits) == 0 {
		return domain.RepoInfo{}, false
	}
	return domain.RepoInfo{
		RepoName:     repo.Name,
		CommitsCount: len(commits),
		Authors:      uniqueAuthors(commits),
		DelayDays:    delayDays(now, commits[0]),
	}, true
}

func uniqueAuthors(commits []domain.Commit) []string {
	seen := make(map[string]struct{}, len(commits))
	authors := make([]string, 0, len(commits))
	for _, c := range commits {
		if c.AuthorLogin == "" {
			continue
		}
		if _, ok := seen[c.AuthorLogin]; ok {
			continue
		}
		seen[c.AuthorLogin] = struct{}{}
		authors = append(authors, c.AuthorLogin)
	}
	return authors
}

// delayDays counts calendar days in now's location, so a commit from
// yesterday evening is one day old even if less than 24h passed.
func delayDays(now time.Time, oldest domain.Commit) int {
	if oldest.CommitterDate == nil {
		return 0
	}
	y1, m1, d1 := now.Date()
	y2, m2, d2 := oldest.CommitterDate.In(now.Location()).Date()
	today := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	then := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(today.Sub(then).Hours() / 24)
}
