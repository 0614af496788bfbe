package airtable

import (
	"encoding/json"
	"strings"
	"time"
)

// attachments decodes an attachment column. Airtable sends a list of
// {url, ...} objects; plain URL text columns are accepted too.
type attachments []string

func (a *attachments) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != "" {
			*a = attachments{s}
		}
		return nil
	}
	var items []struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	out := make(attachments, 0, len(items))
	for _, it := range items {
		if it.URL != "" {
			out = append(out, it.URL)
		}
	}
	*a = out
	return nil
}

func (a attachments) first() string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

// linked decodes a linked-record column: a list of record ids.
type linked []string

func (l linked) first() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

// lookupText decodes lookup columns, which arrive as arrays, and plain text.
type lookupText string

func (t *lookupText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = lookupText(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*t = lookupText(strings.Join(list, ", "))
	return nil
}

const dateLayout = "2006-01-02"

// parseDate reads date-only and full timestamp columns. Invalid input yields
// the zero time.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t
	}
	return time.Time{}
}
