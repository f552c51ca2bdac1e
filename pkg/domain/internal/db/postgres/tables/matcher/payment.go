package matcher

import (
	"fmt"
	"time"

	"github.com/opst/mealplanner/pkg/domain"
	"github.com/shopspring/decimal"
)

type Payment struct {
	Id          Matcher[int64]
	UserId      Matcher[int64]
	EntryId     Matcher[int64]
	Amount      Matcher[decimal.Decimal]
	CompletedAt Matcher[*time.Time]
	DeletedAt   Matcher[*time.Time]
}

func (p Payment) Match(actual domain.Payment) bool {
	return p.Id.Match(actual.Id) &&
		p.UserId.Match(actual.UserId) &&
		p.EntryId.Match(actual.EntryId) &&
		p.Amount.Match(actual.Amount) &&
		p.CompletedAt.Match(actual.CompletedAt) &&
		p.DeletedAt.Match(actual.DeletedAt)
}

func (p Payment) String() string {
	return fmt.Sprintf(
		"{Id:%s UserId:%s EntryId:%s Amount:%s CompletedAt:%s DeletedAt:%s}",
		p.Id, p.UserId, p.EntryId, p.Amount, p.CompletedAt, p.DeletedAt,
	)
}

func (p Payment) Format(s fmt.State, _ rune) {
	fmt.Fprint(s, p.String())
}
