package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	errMissingData    = errors.New("response has no data object")
	errMissingEpisode = errors.New("season and episode are required for series")
)

// flexibleID decodes an identifier that providers send either as a JSON
// string or as a JSON number. Numbers keep their literal text, so 603 becomes
// "603" and 603.0 stays "603.0". null and any other JSON value decode to ""
// so one bad entry leaves the rest of a list usable.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*f = ""
		return nil
	}
	*f = flexibleID(n.String())
	return nil
}
