package store

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lib/pq"
)

type fieldKind int

const (
	stringField fieldKind = iota
	boolField
	intField
	floatField
	stringListField
)

type bulkField struct {
	column  string
	kind    fieldKind
	allowed []string
}

var appUserBulkFields = map[string]bulkField{
	"name":                   {column: "name", kind: stringField},
	"email":                  {column: "email", kind: stringField},
	"pronouns":               {column: "pronouns", kind: stringField},
	"isVerified":             {column: "is_verified", kind: boolField},
	"role":                   {column: "role", kind: stringField, allowed: []string{"artist", "manager"}},
	"roles":                  {column: "roles", kind: stringListField},
	"artistType":             {column: "artist_type", kind: stringField},
	"performanceType":        {column: "performance_type", kind: stringField},
	"stageName":              {column: "stage_name", kind: stringField},
	"epkManagementType":      {column: "epk_management_type", kind: stringField},
	"hasCompletedOnboarding": {column: "has_completed_onboarding", kind: boolField},
	"dashboardTourSeen":      {column: "dashboard_tour_seen", kind: boolField},
	"membership.status":      {column: "membership_status", kind: stringField},
	"membership.amount":      {column: "membership_amount", kind: floatField},
	"membership.joinOrder":   {column: "membership_join_order", kind: intField},
}

var epkBulkFields = map[string]bulkField{
	"userId":           {column: "user_id", kind: stringField},
	"artistName":       {column: "artist_name", kind: stringField},
	"artistType":       {column: "artist_type", kind: stringField},
	"isPublished":      {column: "is_published", kind: boolField},
	"seoEnabled":       {column: "seo_enabled", kind: boolField},
	"analyticsEnabled": {column: "analytics_enabled", kind: boolField},
	"artistMode":       {column: "artist_mode", kind: stringField, allowed: []string{"solo", "group", "duo"}},
	"managedBy":        {column: "managed_by", kind: stringField, allowed: []string{"artist", "manager"}},
	"managerPhone":     {column: "manager_phone", kind: stringField},
}

// columnUpdates converts a JSON update document into a column map, rejecting
// fields outside fields and values of the wrong type.
func columnUpdates(fields map[string]bulkField, updates map[string]interface{}, now time.Time) (map[string]interface{}, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidUpdate)
	}

	columns := make(map[string]interface{}, len(updates)+1)
	for key, raw := range updates {
		field, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("%w: field %q cannot be bulk updated", ErrInvalidUpdate, key)
		}
		value, err := field.convert(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %v", ErrInvalidUpdate, key, err)
		}
		columns[field.column] = value
	}
	columns["updated_at"] = now
	return columns, nil
}

func (f bulkField) convert(raw interface{}) (interface{}, error) {
	switch f.kind {
	case stringField:
		s, ok := raw.(string)
		if !ok {
			return nil, errors.New("must be a string")
		}
		if len(f.allowed) > 0 && !contains(f.allowed, s) {
			return nil, fmt.Errorf("must be one of %v", f.allowed)
		}
		return s, nil
	case boolField:
		b, ok := raw.(bool)
		if !ok {
			return nil, errors.New("must be a boolean")
		}
		return b, nil
	case intField:
		n, ok := raw.(float64)
		if !ok || n != math.Trunc(n) {
			return nil, errors.New("must be an integer")
		}
		return int(n), nil
	case floatField:
		n, ok := raw.(float64)
		if !ok {
			return nil, errors.New("must be a number")
		}
		return n, nil
	case stringListField:
		items, ok := raw.([]interface{})
		if !ok {
			return nil, errors.New("must be a list of strings")
		}
		list := make(pq.StringArray, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("must be a list of strings")
			}
			list = append(list, s)
		}
		return list, nil
	}
	return nil, errors.New("unsupported field")
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
