// Package seed loads users and the activity catalog from a YAML file.
package seed

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yungbote/studygroup-backend/internal/data/repos"
	types "github.com/yungbote/studygroup-backend/internal/domain"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

type File struct {
	Users      []User     `yaml:"users"`
	Activities []Activity `yaml:"activities"`
}

type User struct {
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
}

type Activity struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Subtopics   []Subtopic `yaml:"subtopics"`
}

type Subtopic struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

type Result struct {
	UsersCreated      int
	UsersSkipped      int
	ActivitiesCreated int
	ActivitiesSkipped int
}

func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	for i, u := range f.Users {
		if strings.TrimSpace(u.Email) == "" {
			return nil, fmt.Errorf("users[%d]: email is required", i)
		}
	}
	for i, a := range f.Activities {
		if strings.TrimSpace(a.Title) == "" {
			return nil, fmt.Errorf("activities[%d]: title is required", i)
		}
		for j, st := range a.Subtopics {
			if strings.TrimSpace(st.Title) == "" {
				return nil, fmt.Errorf("activities[%d].subtopics[%d]: title is required", i, j)
			}
		}
	}
	return &f, nil
}

type Seeder struct {
	db      *gorm.DB
	users   repos.UserRepo
	catalog repos.CatalogRepo
	log     *logger.Logger
}

func NewSeeder(db *gorm.DB, users repos.UserRepo, catalog repos.CatalogRepo, baseLog *logger.Logger) *Seeder {
	return &Seeder{db: db, users: users, catalog: catalog, log: baseLog.With("service", "Seeder")}
}

// Apply inserts what is missing in one transaction. Users match on email and
// activities on title, so re-running a file is a no-op.
func (s *Seeder) Apply(ctx context.Context, f *File) (Result, error) {
	var res Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		emails := make([]string, 0, len(f.Users))
		for _, u := range f.Users {
			emails = append(emails, strings.TrimSpace(u.Email))
		}
		existing, err := s.users.GetByEmails(ctx, tx, emails)
		if err != nil {
			return fmt.Errorf("lookup users: %w", err)
		}
		known := map[string]bool{}
		for _, u := range existing {
			known[strings.ToLower(u.Email)] = true
		}
		newUsers := []*types.User{}
		for _, u := range f.Users {
			email := strings.TrimSpace(u.Email)
			if known[strings.ToLower(email)] {
				res.UsersSkipped++
				continue
			}
			known[strings.ToLower(email)] = true
			newUsers = append(newUsers, &types.User{Email: email, FirstName: u.FirstName, LastName: u.LastName})
		}
		if len(newUsers) > 0 {
			if _, err := s.users.Create(ctx, tx, newUsers); err != nil {
				return fmt.Errorf("create users: %w", err)
			}
		}
		res.UsersCreated = len(newUsers)

		current, err := s.catalog.ListWithSubtopics(ctx, tx)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		titles := map[string]bool{}
		for _, a := range current {
			titles[a.Title] = true
		}
		newActivities := []*types.Activity{}
		for _, a := range f.Activities {
			title := strings.TrimSpace(a.Title)
			if titles[title] {
				res.ActivitiesSkipped++
				continue
			}
			titles[title] = true
			act := &types.Activity{Title: title, Description: a.Description}
			for i, st := range a.Subtopics {
				act.Subtopics = append(act.Subtopics, types.Subtopic{
					Title:   strings.TrimSpace(st.Title),
					Content: st.Content,
					Order:   i + 1,
				})
			}
			newActivities = append(newActivities, act)
		}
		if _, err := s.catalog.CreateActivities(ctx, tx, newActivities); err != nil {
			return fmt.Errorf("create activities: %w", err)
		}
		res.ActivitiesCreated = len(newActivities)
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	s.log.Info("seed applied",
		"users_created", res.UsersCreated,
		"users_skipped", res.UsersSkipped,
		"activities_created", res.ActivitiesCreated,
		"activities_skipped", res.ActivitiesSkipped,
	)
	return res, nil
}
