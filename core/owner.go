package core

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Owner tells whom a record applies to: Everyone, or one specific user.
type Owner struct {
	userID string
}

// Everyone is the Owner of records that apply to all users.
func Everyone() Owner { return Owner{} }

// OwnedBy returns the Owner for a specific user; an empty id means Everyone.
func OwnedBy(userID string) Owner { return Owner{userID: CleanString(userID)} }

// IsEveryone reports whether the record applies to all users.
func (o Owner) IsEveryone() bool { return o.userID == "" }

// UserID returns the owning user's id, or "" for Everyone.
func (o Owner) UserID() string { return o.userID }

// VisibleTo reports whether a record with this Owner must be shown to the given user.
func (o Owner) VisibleTo(userID string) bool {
	return o.IsEveryone() || o.userID == userID
}

func (o Owner) String() string {
	if o.IsEveryone() {
		return "everyone"
	}
	return o.userID
}

// MarshalJSON renders Everyone as null and a user as their id.
func (o Owner) MarshalJSON() ([]byte, error) {
	if o.IsEveryone() {
		return []byte("null"), nil
	}
	return json.Marshal(o.userID)
}

// UnmarshalJSON accepts null, "" or a user id.
func (o *Owner) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Everyone()
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("owner must be a user id or null: %w", err)
	}
	*o = OwnedBy(id)
	return nil
}

// Scan implements sql.Scanner; NULL means Everyone.
func (o *Owner) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*o = Everyone()
	case string:
		*o = OwnedBy(v)
	case []byte:
		*o = OwnedBy(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Owner", value)
	}
	return nil
}

// Value implements driver.Valuer; Everyone is stored as NULL.
func (o Owner) Value() (driver.Value, error) {
	if o.IsEveryone() {
		return nil, nil
	}
	return o.userID, nil
}

// OwnerUpdate is an Owner that remembers whether it was present in a JSON document,
// so that an explicit `null` can be told apart from an absent field.
type OwnerUpdate struct {
	Owner
	Provided bool
}

func (u *OwnerUpdate) UnmarshalJSON(data []byte) error {
	u.Provided = true
	return u.Owner.UnmarshalJSON(data)
}
