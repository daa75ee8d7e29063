package model

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var repositoryPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+$`)

// Repository identifies a GitHub repository
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository parses "owner/repo" notation
func ParseRepository(s string) (*Repository, error) {
	if !repositoryPattern.MatchString(s) {
		return nil, goerr.New("invalid repository format, expected 'owner/repo'",
			goerr.V("repo", s), goerr.T(ErrTagInvalidRepository))
	}

	owner, name, _ := strings.Cut(s, "/")
	return &Repository{Owner: owner, Name: name}, nil
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}
