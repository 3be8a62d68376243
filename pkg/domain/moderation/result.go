package moderation

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FlagListJSON stores a set of flags as a jsonb column.
type FlagListJSON []Flag

func (f FlagListJSON) Value() (driver.Value, error) {
	if len(f) == 0 {
		return nil, nil
	}
	return json.Marshal(f)
}

func (f *FlagListJSON) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan flag list: unexpected type %T", value)
	}
	return json.Unmarshal(b, f)
}

// StringListJSON stores detected PII matches as a jsonb column.
type StringListJSON []string

func (s StringListJSON) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringListJSON) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan string list: unexpected type %T", value)
	}
	return json.Unmarshal(b, s)
}

// Result is the verdict for one piece of submitted content.
type Result struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ContentID   string         `json:"content_id" gorm:"index"`
	ContentType ContentType    `json:"content_type" gorm:"index"`
	AuthorID    string         `json:"author_id" gorm:"index"`
	Status      Status         `json:"status" gorm:"index"`
	Flags       FlagListJSON   `json:"flags" gorm:"type:jsonb"`
	Confidence  float64        `json:"confidence"`
	Severity    Severity       `json:"severity"`
	Reason      string         `json:"reason,omitempty"`
	DetectedPII StringListJSON `json:"detected_pii,omitempty" gorm:"type:jsonb;column:detected_pii"`
	CreatedAt   time.Time      `json:"created_at"`
	ReviewedAt  *time.Time     `json:"reviewed_at,omitempty"`
	ReviewedBy  string         `json:"reviewed_by,omitempty"`
	Notes       string         `json:"notes,omitempty"`
}

func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return nil
}

func (r *Result) TableName() string {
	return "public.moderation_results"
}

func (r *Result) HasFlag(f Flag) bool {
	for _, flag := range r.Flags {
		if flag == f {
			return true
		}
	}
	return false
}

// MarkReviewed stamps the reviewer fields and moves the result into the
// given status. ReviewedAt is set only for terminal statuses, keeping the
// invariant that non-terminal results carry no review timestamp.
func (r *Result) MarkReviewed(status Status, moderatorID, notes string) {
	r.Status = status
	r.ReviewedBy = moderatorID
	r.Notes = notes
	if status.IsTerminal() {
		now := time.Now()
		r.ReviewedAt = &now
	} else {
		r.ReviewedAt = nil
	}
}

// ReasonFromFlags builds the human-readable reason attached to a verdict.
func ReasonFromFlags(flags []Flag) string {
	if len(flags) == 0 {
		return ""
	}
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = string(f)
	}
	sort.Strings(names)
	return "content flagged: " + strings.Join(names, ", ")
}
