package domain

import (
	"fmt"
	"strings"
	"time"

	domerr "github.com/opst/mealplanner/pkg/domain/errors"
)

// CommentableType tags what a comment is attached to.
type CommentableType string

const (
	CommentOnRecipe   CommentableType = "recipe"
	CommentOnMealPlan CommentableType = "meal_plan"
)

func AsCommentableType(s string) (CommentableType, error) {
	switch t := CommentableType(s); t {
	case CommentOnRecipe, CommentOnMealPlan:
		return t, nil
	}
	return "", fmt.Errorf(
		"%w: commentable type should be one of %q or %q: %q",
		domerr.ErrInvalidParam, CommentOnRecipe, CommentOnMealPlan, s,
	)
}

type Commentable struct {
	Type CommentableType
	Id   int64
}

type Comment struct {
	Id          int64
	UserId      int64
	Commentable Commentable
	Body        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// maximum length of comment body, in runes.
const MaxCommentLength = 4000

// ValidateCommentBody normalizes and checks the body of a comment.
func ValidateCommentBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", domerr.NewInvalidParam("body", "should not be empty")
	}
	if n := len([]rune(body)); MaxCommentLength < n {
		return "", domerr.NewInvalidParam(
			"body", fmt.Sprintf("is too long (%d > %d)", n, MaxCommentLength),
		)
	}
	return body, nil
}
