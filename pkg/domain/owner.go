package domain

import "fmt"

// Owner is a scope of records which an operation can touch.
//
// Regular users see only their own records.
// The admin back-office uses AnyOwner to see everything.
type Owner struct {
	userId int64
	any    bool
}

// AnyOwner is the scope including records of all users.
var AnyOwner = Owner{any: true}

func OwnedBy(userId int64) Owner {
	return Owner{userId: userId}
}

// UserId returns owner's id. When it is AnyOwner, ok is false.
func (o Owner) UserId() (id int64, ok bool) {
	return o.userId, !o.any
}

func (o Owner) IsAny() bool {
	return o.any
}

// Includes tells the record owned by userId is in this scope.
func (o Owner) Includes(userId int64) bool {
	return o.any || o.userId == userId
}

// SQLParams returns parameters for the condition
//
//	($1::bool or "user_id" = $2)
//
// which is true for records in this scope.
func (o Owner) SQLParams() (bool, int64) {
	return o.any, o.userId
}

func (o Owner) String() string {
	if o.any {
		return "owner:*"
	}
	return fmt.Sprintf("owner:%d", o.userId)
}
