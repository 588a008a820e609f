package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/compozy/rcbot/internal/domain"
)

// AllSuccessMessage is posted when no repository has pending commits.
const AllSuccessMessage = "All your repos are looking well. Good job team :)"

// PrepareReminderUseCase renders the reminder posted to the chat channel.
type PrepareReminderUseCase struct{}

type reminderRepo struct {
	Name        string
	AuthorTitle string
	CommitTitle string
	Authors     string
	Delay       int
	DayTitle    string
}

// Execute renders the reminder for repos in the given order.
func (uc *PrepareReminderUseCase) Execute(_ context.Context, head, base string, repos []domain.RepoInfo) (string, error) {
	if len(repos) == 0 {
		return "", fmt.Errorf("reminder needs at least one repository")
	}
	data := struct {
		Head  string
		Base  string
		Repos []reminderRepo
	}{
		Head:  strings.ToUpper(head),
		Base:  strings.ToUpper(base),
		Repos: make([]reminderRepo, 0, len(repos)),
	}
	for _, r := range repos {
		data.Repos = append(data.Repos, reminderRepo{
			Name:        r.RepoName,
			AuthorTitle: plural("Author", len(r.Authors)),
			CommitTitle: plural("commit", r.CommitsCount),
			Authors:     strings.Join(r.Authors, ", "),
			Delay:       r.DelayDays,
			DayTitle:    plural("day", r.DelayDays),
		})
	}

	tmpl, err := template.New("reminder").Option("missingkey=error").Parse(reminderTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse reminder template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute reminder template: %w", err)
	}
	return buf.String(), nil
}

func plural(word string, n int) string {
	if n > 1 {
		return word + "s"
	}
	return word
}

// A zero delay renders no Delay line; negative delays still do.
const reminderTemplate = "REPOSITORIES LISTED BELOW ARE NOT UPDATED PROPERLY. " +
	"PLEASE MERGE {{.Head}} TO {{.Base}} BRANCH.\n" +
	"{{range .Repos}}-----------------\n" +
	"Repo: {{.Name}}\n" +
	"{{.AuthorTitle}} of not updated {{.CommitTitle}}: {{.Authors}}\n" +
	"{{if .Delay}}Delay: {{.Delay}} {{.DayTitle}}\n{{end}}" +
	"{{end}}"
