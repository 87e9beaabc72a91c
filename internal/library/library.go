// Package library holds precomposed queries over the commit graph of a
// database. Every query runs against the "_commits" collection.
package library

import (
	"time"

	"github.com/roach88/woql/internal/woql"
)

const (
	// CommitsCollection is the collection holding branch and commit objects.
	CommitsCollection = "_commits"

	// DefaultBranch is used when a branch name is left empty.
	DefaultBranch = "main"
)

// commitFields are the variables every commit listing projects.
var commitFields = []any{"v:CommitID", "v:Time", "v:Author", "v:Message"}

// Branches lists every branch with its head commit, when it has one.
func Branches() *woql.Query {
	body := woql.New().
		Triple("v:Branch", "rdf:type", "@schema:Branch").
		Triple("v:Branch", "@schema:name", "v:Name").
		Opt(woql.New().
			Triple("v:Branch", "@schema:head", "v:Head").
			Triple("v:Head", "@schema:identifier", "v:HeadID").
			Triple("v:Head", "@schema:timestamp", "v:Time"))

	return woql.New().Using(CommitsCollection,
		woql.New().Select("v:Name", "v:HeadID", "v:Time", body))
}

// CommitOptions bounds a commit log query. Zero values mean no bound.
type CommitOptions struct {
	Branch string
	Limit  int
	Start  int
	Before time.Time
}

// Commits walks the history of a branch from its head, newest first.
func Commits(opts CommitOptions) *woql.Query {
	branch := opts.Branch
	if branch == "" {
		branch = DefaultBranch
	}

	body := woql.New().
		Triple("v:Branch", "@schema:name", woql.String(branch)).
		Triple("v:Branch", "@schema:head", "v:Head").
		Path("v:Head", "@schema:parent*", "v:Commit")
	commitDetails(body, "v:Commit")
	if !opts.Before.IsZero() {
		body.Less("v:Time", opts.Before.Unix())
	}

	q := project(woql.New().OrderBy(woql.Desc("v:Time"), body))
	if opts.Start > 0 {
		q = woql.New().Start(opts.Start, q)
	}
	if opts.Limit > 0 {
		q = woql.New().Limit(opts.Limit, q)
	}
	return woql.New().Using(CommitsCollection, q)
}

// PreviousCommits returns up to count ancestors of the commit with the
// given identifier, nearest first.
func PreviousCommits(commitID string, count int) *woql.Query {
	body := woql.New().
		Triple("v:Active", "@schema:identifier", woql.String(commitID)).
		Path("v:Active", "@schema:parent+", "v:Commit")
	commitDetails(body, "v:Commit")

	q := project(woql.New().OrderBy(woql.Desc("v:Time"), body))
	if count > 0 {
		q = woql.New().Limit(count, q)
	}
	return woql.New().Using(CommitsCollection, q)
}

// FirstCommit finds the root of a branch: the ancestor with no parent.
func FirstCommit(branch string) *woql.Query {
	if branch == "" {
		branch = DefaultBranch
	}

	body := woql.New().
		Triple("v:Branch", "@schema:name", woql.String(branch)).
		Triple("v:Branch", "@schema:head", "v:Head").
		Path("v:Head", "@schema:parent*", "v:Commit").
		Not(woql.New().Triple("v:Commit", "@schema:parent", "v:Parent"))
	commitDetails(body, "v:Commit")

	return woql.New().Using(CommitsCollection, project(body))
}

// CommitByID looks up a single commit.
func CommitByID(commitID string) *woql.Query {
	body := woql.New().
		Triple("v:Commit", "@schema:identifier", woql.String(commitID))
	commitDetails(body, "v:Commit")

	return woql.New().Using(CommitsCollection, project(body))
}

func commitDetails(q *woql.Query, commit string) {
	q.Triple(commit, "@schema:identifier", "v:CommitID").
		Triple(commit, "@schema:timestamp", "v:Time").
		Triple(commit, "@schema:author", "v:Author").
		Triple(commit, "@schema:message", "v:Message")
}

func project(body *woql.Query) *woql.Query {
	args := append(append([]any{}, commitFields...), body)
	return woql.New().Select(args...)
}
