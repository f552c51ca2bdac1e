package payments

import (
	"github.com/opst/mealplanner/pkg/utils/rfctime"
	"github.com/shopspring/decimal"
)

type Detail struct {
	Id          int64            `json:"id"`
	UserId      int64            `json:"userId"`
	EntryId     int64            `json:"entryId"`
	Amount      decimal.Decimal  `json:"amount"`
	Note        string           `json:"note,omitempty"`
	CompletedAt *rfctime.RFC3339 `json:"completedAt,omitempty"`
	DeletedAt   *rfctime.RFC3339 `json:"deletedAt,omitempty"`
	CreatedAt   rfctime.RFC3339  `json:"createdAt"`
	UpdatedAt   rfctime.RFC3339  `json:"updatedAt"`
}

type Param struct {
	EntryId int64           `json:"entryId"`
	Amount  decimal.Decimal `json:"amount"`
	Note    string          `json:"note,omitempty"`
}

// Result of purging expired payments.
type PurgeResult struct {
	Purged int64 `json:"purged"`
}
