package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID — непрозрачный идентификатор записи. В хранилище встречается и строкой,
// и числом (Date.now()), поэтому запоминаем исходную форму.
type ID struct {
	Value   string
	Numeric bool
}

func NewID(v string) ID { return ID{Value: v} }

func (id ID) String() string { return id.Value }

func (id ID) IsZero() bool { return id.Value == "" }

func (id ID) MarshalJSON() ([]byte, error) {
	if id.Numeric {
		return []byte(id.Value), nil
	}
	return json.Marshal(id.Value)
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ID{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID{Value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID{Value: n.String(), Numeric: true}
	return nil
}

// Age — возраст, который может прийти числом, строкой или не прийти вовсе.
// Raw хранит исходное значение для обратной записи.
type Age struct {
	Raw json.RawMessage
}

func AgeOf(n int) Age { return Age{Raw: json.RawMessage(strconv.Itoa(n))} }

func (a Age) IsZero() bool { return len(a.Raw) == 0 }

// Int возвращает возраст, если он задан целым неотрицательным числом.
func (a Age) Int() (int, bool) {
	if len(a.Raw) == 0 {
		return 0, false
	}
	s := strings.TrimSpace(string(a.Raw))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(a.Raw, &str); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(str)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (a Age) MarshalJSON() ([]byte, error) {
	if len(a.Raw) == 0 {
		return []byte("null"), nil
	}
	return a.Raw, nil
}

func (a *Age) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		a.Raw = nil
		return nil
	}
	a.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// Text — строковое поле, которое старые формы сохраняли числом
// (класс 5, длительность 45). Число хранится своей десятичной записью.
type Text string

func (t Text) String() string { return string(t) }

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}
