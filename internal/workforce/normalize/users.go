package normalize

import (
	"fmt"
	"strings"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
)

// User export columns
const (
	ColID          = "ID"
	ColCreatedDate = "Created Date"
)

// UserSchema describes the user export
var UserSchema = Schema{Columns: []Column{
	{Name: ColID, Aliases: []string{"User ID"}, Kind: KindString, Required: true},
	{Name: ColCreatedDate, Aliases: []string{"created_at", "Registration Date"}, Kind: KindTimestamp},
}}

// ParseUsers normalizes a user export.
// Rows with an empty or "undefined" id are dropped and the first occurrence of a duplicate id wins.
// A missing or unparseable registration date falls back to domain.DefaultUserCreatedAt.
func ParseUsers(csvText string) ([]domain.UserRecord, []domain.ParseWarning) {
	rows, warnings := Normalize(csvText, UserSchema)

	seen := make(map[string]int, len(rows))
	records := make([]domain.UserRecord, 0, len(rows))
	for _, row := range rows {
		id := row.Text(ColID)
		if strings.EqualFold(id, "undefined") {
			continue
		}
		if first, dup := seen[id]; dup {
			warnings = append(warnings, domain.ParseWarning{
				Line:    row.Line,
				Column:  ColID,
				Message: fmt.Sprintf("duplicate user id %q, keeping line %d", id, first),
			})
			continue
		}
		seen[id] = row.Line

		createdAt, ok := row.Time(ColCreatedDate)
		if !ok {
			createdAt = domain.DefaultUserCreatedAt
			if row.Raw(ColCreatedDate) == "" {
				warnings = append(warnings, domain.ParseWarning{
					Line:    row.Line,
					Column:  ColCreatedDate,
					Message: "missing registration date, using " + domain.DefaultUserCreatedAt.Format("2006-01-02"),
				})
			}
		}

		records = append(records, domain.UserRecord{
			UserID:       id,
			CreatedAt:    createdAt,
			RawCreatedAt: row.Raw(ColCreatedDate),
		})
	}

	return records, warnings
}
