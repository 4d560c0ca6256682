package providers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/i474232898/weather-now/internal/weather"
)

var errNotScalar = errors.New("value is not a string, number or boolean")

// object is one level of the response document, keyed by field name.
type object struct {
	path   string
	fields map[string]json.RawMessage
}

// DecodeConditions turns a weatherstack current-conditions body into
// weather.Conditions. Either every field is present and the record is
// returned, or a *weather.DecodeError (or *weather.APIError for the
// provider's error envelope) is returned and no record is built.
func DecodeConditions(body []byte) (weather.Conditions, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return weather.Conditions{}, &weather.DecodeError{Err: err}
	}
	root := object{fields: fields}

	if apiErr := root.apiError(); apiErr != nil {
		return weather.Conditions{}, apiErr
	}

	current, err := root.object("current")
	if err != nil {
		return weather.Conditions{}, err
	}
	location, err := root.object("location")
	if err != nil {
		return weather.Conditions{}, err
	}

	var c weather.Conditions
	scalars := []struct {
		from *object
		key  string
		dst  *string
	}{
		{&current, "temperature", &c.TemperatureC},
		{&current, "is_day", &c.IsDaytime},
		{&current, "wind_dir", &c.WindDirection},
		{&current, "wind_speed", &c.WindSpeed},
		{&current, "pressure", &c.Pressure},
		{&current, "weather_code", &c.ConditionCode},
	}
	for _, s := range scalars {
		if *s.dst, err = s.from.text(s.key); err != nil {
			return weather.Conditions{}, err
		}
	}

	if c.ConditionName, err = current.firstText("weather_descriptions"); err != nil {
		return weather.Conditions{}, err
	}

	country, err := location.text("country")
	if err != nil {
		return weather.Conditions{}, err
	}
	region, err := location.text("region")
	if err != nil {
		return weather.Conditions{}, err
	}
	name, err := location.text("name")
	if err != nil {
		return weather.Conditions{}, err
	}
	c.LocationLabel = country + ", " + region + ", " + name

	return c, nil
}

func (o object) join(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

func (o object) raw(key string) (json.RawMessage, error) {
	raw, ok := o.fields[key]
	if !ok || isNull(raw) {
		return nil, &weather.DecodeError{Path: o.join(key), Err: weather.ErrMissingField}
	}
	return raw, nil
}

func (o object) object(key string) (object, error) {
	raw, err := o.raw(key)
	if err != nil {
		return object{}, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return object{}, &weather.DecodeError{Path: o.join(key), Err: err}
	}
	return object{path: o.join(key), fields: fields}, nil
}

func (o object) text(key string) (string, error) {
	raw, err := o.raw(key)
	if err != nil {
		return "", err
	}
	s, err := scalarText(raw)
	if err != nil {
		return "", &weather.DecodeError{Path: o.join(key), Err: err}
	}
	return s, nil
}

// firstText reads the first element of the array at key.
func (o object) firstText(key string) (string, error) {
	raw, err := o.raw(key)
	if err != nil {
		return "", err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return "", &weather.DecodeError{Path: o.join(key), Err: err}
	}
	if len(items) == 0 {
		return "", &weather.DecodeError{Path: o.join(key), Err: weather.ErrEmptyDescriptions}
	}
	path := o.join(key) + "[0]"
	if isNull(items[0]) {
		return "", &weather.DecodeError{Path: path, Err: weather.ErrMissingField}
	}
	s, err := scalarText(items[0])
	if err != nil {
		return "", &weather.DecodeError{Path: path, Err: err}
	}
	return s, nil
}

// apiError returns the provider's error envelope, if the body is one.
func (o object) apiError() *weather.APIError {
	raw, ok := o.fields["error"]
	if !ok || isNull(raw) {
		return nil
	}
	var envelope struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &weather.APIError{Info: string(raw)}
	}
	return &weather.APIError{Code: envelope.Code, Type: envelope.Type, Info: envelope.Info}
}

// scalarText coerces a JSON scalar to text. Numbers keep their literal
// spelling from the body.
func scalarText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", errNotScalar
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case '{', '[', 'n':
		return "", errNotScalar
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
