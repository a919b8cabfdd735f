package entry

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/mesh-intelligence/yo/pkg/types"
)

// Parameter is one typed field assignment carried by a set or log entry.
// The set of variants is closed: Title, Description, Size, Remaining, Spent,
// Priority, Owner, Duedate, Kind, Message and Status.
type Parameter interface {
	// Key is the fixed lowercase wire key.
	Key() string
	// String encodes the parameter as "<key> <value>".
	String() string
	isParameter()
}

// Parameter wire keys.
const (
	KeyTitle       = "title"
	KeyDescription = "description"
	KeySize        = "size"
	KeyRemaining   = "remaining"
	KeySpent       = "spent"
	KeyPriority    = "priority"
	KeyOwner       = "owner"
	KeyDuedate     = "duedate"
	KeyKind        = "kind"
	KeyMessage     = "message"
	KeyStatus      = "status"
)

type (
	Title       struct{ Value string }
	Description struct{ Value string }
	Size        struct{ Value types.Quantity }
	Remaining   struct{ Value types.Quantity }
	Spent       struct{ Value types.Quantity }
	Priority    struct{ Value types.Priority }
	Owner       struct{ Value types.UserID }
	Duedate     struct{ Value time.Time } // Calendar date; only Y-M-D is encoded.
	Kind        struct{ Value types.ItemKind }
	Message     struct{ Value string }
	Status      struct{ Value types.Status }
)

func (Title) Key() string       { return KeyTitle }
func (Description) Key() string { return KeyDescription }
func (Size) Key() string        { return KeySize }
func (Remaining) Key() string   { return KeyRemaining }
func (Spent) Key() string       { return KeySpent }
func (Priority) Key() string    { return KeyPriority }
func (Owner) Key() string       { return KeyOwner }
func (Duedate) Key() string     { return KeyDuedate }
func (Kind) Key() string        { return KeyKind }
func (Message) Key() string     { return KeyMessage }
func (Status) Key() string      { return KeyStatus }

func (p Title) String() string       { return join(p.Key(), p.Value) }
func (p Description) String() string { return join(p.Key(), p.Value) }
func (p Size) String() string        { return join(p.Key(), p.Value.String()) }
func (p Remaining) String() string   { return join(p.Key(), p.Value.String()) }
func (p Spent) String() string       { return join(p.Key(), p.Value.String()) }
func (p Priority) String() string    { return join(p.Key(), p.Value.String()) }
func (p Owner) String() string       { return join(p.Key(), p.Value.String()) }
func (p Duedate) String() string     { return join(p.Key(), types.FormatDate(p.Value)) }
func (p Kind) String() string        { return join(p.Key(), p.Value.String()) }
func (p Message) String() string     { return join(p.Key(), p.Value) }
func (p Status) String() string      { return join(p.Key(), p.Value.String()) }

func (Title) isParameter()       {}
func (Description) isParameter() {}
func (Size) isParameter()        {}
func (Remaining) isParameter()   {}
func (Spent) isParameter()       {}
func (Priority) isParameter()    {}
func (Owner) isParameter()       {}
func (Duedate) isParameter()     {}
func (Kind) isParameter()        {}
func (Message) isParameter()     {}
func (Status) isParameter()      {}

// join keeps an empty free-text value as the bare key.
func join(key, value string) string {
	if value == "" {
		return key
	}
	return key + " " + value
}

// paramParsers is the key dispatch table for ParseParam.
var paramParsers = map[string]func(string) (Parameter, error){
	KeyTitle:       func(s string) (Parameter, error) { return Title{Value: s}, nil },
	KeyDescription: func(s string) (Parameter, error) { return Description{Value: s}, nil },
	KeyMessage:     func(s string) (Parameter, error) { return Message{Value: s}, nil },
	KeySize: func(s string) (Parameter, error) {
		q, err := types.ParseQuantity(s)
		return Size{Value: q}, err
	},
	KeyRemaining: func(s string) (Parameter, error) {
		q, err := types.ParseQuantity(s)
		return Remaining{Value: q}, err
	},
	KeySpent: func(s string) (Parameter, error) {
		q, err := types.ParseQuantity(s)
		return Spent{Value: q}, err
	},
	KeyPriority: func(s string) (Parameter, error) {
		p, err := types.ParsePriority(s)
		return Priority{Value: p}, err
	},
	KeyOwner: func(s string) (Parameter, error) {
		u, err := types.ParseUserID(s)
		return Owner{Value: u}, err
	},
	KeyDuedate: func(s string) (Parameter, error) {
		d, err := types.ParseDate(s)
		return Duedate{Value: d}, err
	},
	KeyKind: func(s string) (Parameter, error) {
		k, err := types.ParseItemKind(s)
		return Kind{Value: k}, err
	},
	KeyStatus: func(s string) (Parameter, error) {
		st, err := types.ParseStatus(s)
		return Status{Value: st}, err
	},
}

// logKeys are the only keys a log entry may carry.
var logKeys = map[string]bool{
	KeySpent:     true,
	KeyRemaining: true,
	KeyMessage:   true,
}

// ParseParam decodes one "<key> <value>" segment. The key is separated from
// the value by the first run of whitespace; free-text values keep the rest
// of the segment verbatim.
func ParseParam(segment string) (Parameter, error) {
	seg := strings.TrimSpace(segment)
	key, value := cutField(seg)
	parse, ok := paramParsers[strings.ToLower(key)]
	if !ok {
		return nil, &ParamError{Key: key, Segment: seg, Err: ErrUnknownParameterKey}
	}
	p, err := parse(value)
	if err != nil {
		return nil, &ParamError{Key: key, Segment: seg, Err: err}
	}
	return p, nil
}

// ParseParams decodes a ";"-separated parameter list. Empty segments are
// skipped, so a trailing separator is harmless. The first bad segment fails
// the whole list. An empty list decodes to nil.
func ParseParams(raw string) ([]Parameter, error) {
	var params []Parameter
	for _, seg := range strings.Split(raw, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		p, err := ParseParam(seg)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

// parseLogParams is ParseParams restricted to the log keys.
func parseLogParams(raw string) ([]Parameter, error) {
	params, err := ParseParams(raw)
	if err != nil {
		return nil, err
	}
	for _, p := range params {
		if !logKeys[p.Key()] {
			return nil, &ParamError{Key: p.Key(), Segment: p.String(), Err: ErrParameterNotAllowed}
		}
	}
	return params, nil
}

// FormatParams encodes a parameter list joined by "; ".
func FormatParams(params []Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, "; ")
}

// validateParam checks that p would survive an encode/decode round trip.
func validateParam(p Parameter) error {
	var err error
	switch v := p.(type) {
	case Title:
		err = validateText(v.Value)
	case Description:
		err = validateText(v.Value)
	case Message:
		err = validateText(v.Value)
	case Size:
		err = validateQuantity(v.Value)
	case Remaining:
		err = validateQuantity(v.Value)
	case Spent:
		err = validateQuantity(v.Value)
	case Priority:
		if v.Value < types.PriorityHigh || v.Value > types.PriorityLow {
			err = fmt.Errorf("%w: %d", types.ErrMalformedPriority, int(v.Value))
		}
	case Owner:
		if _, err = types.ParseUserID(string(v.Value)); err == nil {
			err = validateText(string(v.Value))
		}
	case Kind:
		_, err = types.ParseItemKind(string(v.Value))
	case Status:
		_, err = types.ParseStatus(v.Value.String())
	case Duedate:
		d := v.Value
		if !d.Equal(time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)) || d.Location() != time.UTC {
			err = fmt.Errorf("%w: due date must be midnight UTC", types.ErrMalformedTimestamp)
		}
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownParameterKey, p)
	}
	if err != nil {
		return &ParamError{Key: p.Key(), Err: err}
	}
	return nil
}

func validateText(s string) error {
	if strings.ContainsAny(s, ";\r\n") {
		return fmt.Errorf("%w: %q contains ';' or a line break", ErrInvalidText, s)
	}
	if strings.TrimSpace(s) != s {
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidText, s)
	}
	return nil
}

func validateQuantity(q types.Quantity) error {
	if !q.Valid() {
		return fmt.Errorf("%w: unit not set", types.ErrMalformedQuantity)
	}
	return nil
}

// cutField splits s at its first run of whitespace.
func cutField(s string) (field, rest string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}
