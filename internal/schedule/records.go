package schedule

import (
	"bytes"
	"encoding/json"
)

type (
	// Record is one entry of the menus API collection.
	Record struct {
		ID        int        `json:"id"`
		Name      string     `json:"name"`
		MenuItems []MenuItem `json:"menuItems"`
	}

	MenuItem struct {
		Name    string `json:"name"`
		RawHTML string `json:"rawHtml"`
	}

	collection struct {
		Members []Record `json:"hydra:member"`
	}
)

// Normalize decodes the API payload into records. The API either wraps records in
// a hydra collection or returns them as a bare array. Any other shape yields no records.
func Normalize(data []byte) []Record {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []Record{}
	}

	switch data[0] {
	case '{':
		var c collection
		if err := json.Unmarshal(data, &c); err != nil || c.Members == nil {
			return []Record{}
		}
		return c.Members
	case '[':
		var res []Record
		if err := json.Unmarshal(data, &res); err != nil || res == nil {
			return []Record{}
		}
		return res
	default:
		return []Record{}
	}
}
