package mailaddr

import (
	"encoding/json"
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

// emailJSON is the wire form of an Email.
type emailJSON struct {
	LocalPart                string   `json:"localPart"`
	LocalPartWithoutComments string   `json:"localPartWithoutComments"`
	LocalPartWithoutQuotes   string   `json:"localPartWithoutQuotes"`
	Domain                   string   `json:"domain"`
	DomainWithoutComments    string   `json:"domainWithoutComments"`
	DomainParts              []string `json:"domainParts"`
	Comments                 []string `json:"comments,omitempty"`
	ExplicitSourceRoute      string   `json:"explicitSourceRoute,omitempty"`
	SourceRoutes             []string `json:"sourceRoutes,omitempty"`
	IsIPAddress              bool     `json:"isIpAddress"`
	ContainsWhitespace       bool     `json:"containsWhitespace"`
	IsASCII                  bool     `json:"isAscii"`
	DisplayName              *string  `json:"displayName,omitempty"`
	AngleAddress             *Email   `json:"angleAddress,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e *Email) MarshalJSON() ([]byte, error) {
	w := emailJSON{
		LocalPart:                e.localPart,
		LocalPartWithoutComments: e.localPartWithoutComments,
		LocalPartWithoutQuotes:   e.localPartWithoutQuotes,
		Domain:                   e.domain,
		DomainWithoutComments:    e.domainWithoutComments,
		DomainParts:              e.domainParts,
		Comments:                 e.comments,
		ExplicitSourceRoute:      e.explicitSourceRoute,
		SourceRoutes:             e.sourceRoutes,
		IsIPAddress:              e.isIPAddress,
		ContainsWhitespace:       e.containsWhitespace,
		IsASCII:                  e.isASCII,
	}
	if e.display != nil {
		w.DisplayName = &e.display.name
		w.AngleAddress = e.display.addr
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Email) UnmarshalJSON(data []byte) error {
	var w emailJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	if w.AngleAddress != nil {
		name := ""
		if w.DisplayName != nil {
			name = *w.DisplayName
		}
		*e = *w.AngleAddress.withDisplayName(name)
		return nil
	}

	*e = Email{
		localPart:                w.LocalPart,
		localPartWithoutComments: w.LocalPartWithoutComments,
		localPartWithoutQuotes:   w.LocalPartWithoutQuotes,
		domain:                   w.Domain,
		domainWithoutComments:    w.DomainWithoutComments,
		domainParts:              w.DomainParts,
		comments:                 w.Comments,
		explicitSourceRoute:      w.ExplicitSourceRoute,
		sourceRoutes:             w.SourceRoutes,
		isIPAddress:              w.IsIPAddress,
		containsWhitespace:       w.ContainsWhitespace,
		isASCII:                  w.IsASCII,
	}
	return nil
}

// ToJSON serializes the Email to JSON bytes.
func (e *Email) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON deserializes an Email from JSON bytes.
func FromJSON(data []byte) (*Email, error) {
	var e Email
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

var (
	_ msgp.Marshaler   = (*Email)(nil)
	_ msgp.Unmarshaler = (*Email)(nil)
	_ msgp.Sizer       = (*Email)(nil)
)

// emailMsgKeys lists the MessagePack map keys in encoding order.
var emailMsgKeys = []string{
	"localPart", "localPartWithoutComments", "localPartWithoutQuotes",
	"domain", "domainWithoutComments", "domainParts", "comments",
	"explicitSourceRoute", "sourceRoutes", "isIpAddress",
	"containsWhitespace", "isAscii", "displayName", "angleAddress",
}

// MarshalMsg implements msgp.Marshaler.
func (e *Email) MarshalMsg(b []byte) ([]byte, error) {
	o := msgp.Require(b, e.Msgsize())
	o = msgp.AppendMapHeader(o, uint32(len(emailMsgKeys)))

	o = msgp.AppendString(o, "localPart")
	o = msgp.AppendString(o, e.localPart)
	o = msgp.AppendString(o, "localPartWithoutComments")
	o = msgp.AppendString(o, e.localPartWithoutComments)
	o = msgp.AppendString(o, "localPartWithoutQuotes")
	o = msgp.AppendString(o, e.localPartWithoutQuotes)
	o = msgp.AppendString(o, "domain")
	o = msgp.AppendString(o, e.domain)
	o = msgp.AppendString(o, "domainWithoutComments")
	o = msgp.AppendString(o, e.domainWithoutComments)
	o = msgp.AppendString(o, "domainParts")
	o = appendStrings(o, e.domainParts)
	o = msgp.AppendString(o, "comments")
	o = appendStrings(o, e.comments)
	o = msgp.AppendString(o, "explicitSourceRoute")
	o = msgp.AppendString(o, e.explicitSourceRoute)
	o = msgp.AppendString(o, "sourceRoutes")
	o = appendStrings(o, e.sourceRoutes)
	o = msgp.AppendString(o, "isIpAddress")
	o = msgp.AppendBool(o, e.isIPAddress)
	o = msgp.AppendString(o, "containsWhitespace")
	o = msgp.AppendBool(o, e.containsWhitespace)
	o = msgp.AppendString(o, "isAscii")
	o = msgp.AppendBool(o, e.isASCII)

	o = msgp.AppendString(o, "displayName")
	if e.display == nil {
		o = msgp.AppendNil(o)
	} else {
		o = msgp.AppendString(o, e.display.name)
	}
	o = msgp.AppendString(o, "angleAddress")
	if e.display == nil {
		return msgp.AppendNil(o), nil
	}
	return e.display.addr.MarshalMsg(o)
}

// UnmarshalMsg implements msgp.Unmarshaler. Unknown keys are skipped.
func (e *Email) UnmarshalMsg(b []byte) ([]byte, error) {
	sz, o, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return b, err
	}

	var (
		out   Email
		name  *string
		angle *Email
	)
	for range sz {
		var key []byte
		key, o, err = msgp.ReadMapKeyZC(o)
		if err != nil {
			return b, err
		}

		switch string(key) {
		case "localPart":
			out.localPart, o, err = msgp.ReadStringBytes(o)
		case "localPartWithoutComments":
			out.localPartWithoutComments, o, err = msgp.ReadStringBytes(o)
		case "localPartWithoutQuotes":
			out.localPartWithoutQuotes, o, err = msgp.ReadStringBytes(o)
		case "domain":
			out.domain, o, err = msgp.ReadStringBytes(o)
		case "domainWithoutComments":
			out.domainWithoutComments, o, err = msgp.ReadStringBytes(o)
		case "domainParts":
			out.domainParts, o, err = readStrings(o)
		case "comments":
			out.comments, o, err = readStrings(o)
		case "explicitSourceRoute":
			out.explicitSourceRoute, o, err = msgp.ReadStringBytes(o)
		case "sourceRoutes":
			out.sourceRoutes, o, err = readStrings(o)
		case "isIpAddress":
			out.isIPAddress, o, err = msgp.ReadBoolBytes(o)
		case "containsWhitespace":
			out.containsWhitespace, o, err = msgp.ReadBoolBytes(o)
		case "isAscii":
			out.isASCII, o, err = msgp.ReadBoolBytes(o)
		case "displayName":
			if msgp.IsNil(o) {
				o, err = msgp.ReadNilBytes(o)
				break
			}
			var s string
			s, o, err = msgp.ReadStringBytes(o)
			name = &s
		case "angleAddress":
			if msgp.IsNil(o) {
				o, err = msgp.ReadNilBytes(o)
				break
			}
			angle = new(Email)
			o, err = angle.UnmarshalMsg(o)
		default:
			o, err = msgp.Skip(o)
		}
		if err != nil {
			return b, fmt.Errorf("mailaddr: decoding %s: %w", key, err)
		}
	}

	if angle != nil {
		display := ""
		if name != nil {
			display = *name
		}
		out = *angle.withDisplayName(display)
	}
	*e = out
	return o, nil
}

// Msgsize returns an upper bound of the encoded size of e.
func (e *Email) Msgsize() int {
	s := msgp.MapHeaderSize
	for _, k := range emailMsgKeys {
		s += msgp.StringPrefixSize + len(k)
	}
	for _, v := range []string{
		e.localPart, e.localPartWithoutComments, e.localPartWithoutQuotes,
		e.domain, e.domainWithoutComments, e.explicitSourceRoute,
	} {
		s += msgp.StringPrefixSize + len(v)
	}
	s += stringsSize(e.domainParts) + stringsSize(e.comments) + stringsSize(e.sourceRoutes)
	s += 3 * msgp.BoolSize
	if e.display == nil {
		return s + 2*msgp.NilSize
	}
	return s + msgp.StringPrefixSize + len(e.display.name) + e.display.addr.Msgsize()
}

func appendStrings(b []byte, ss []string) []byte {
	b = msgp.AppendArrayHeader(b, uint32(len(ss)))
	for _, s := range ss {
		b = msgp.AppendString(b, s)
	}
	return b
}

func readStrings(b []byte) ([]string, []byte, error) {
	if msgp.IsNil(b) {
		o, err := msgp.ReadNilBytes(b)
		return nil, o, err
	}

	n, o, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return nil, b, err
	}
	if n == 0 {
		return nil, o, nil
	}
	ss := make([]string, n)
	for i := range ss {
		ss[i], o, err = msgp.ReadStringBytes(o)
		if err != nil {
			return nil, b, err
		}
	}
	return ss, o, nil
}

func stringsSize(ss []string) int {
	s := msgp.ArrayHeaderSize
	for _, v := range ss {
		s += msgp.StringPrefixSize + len(v)
	}
	return s
}

// ToMessagePack serializes the Email to MessagePack bytes.
func (e *Email) ToMessagePack() ([]byte, error) {
	return e.MarshalMsg(nil)
}

// FromMessagePack deserializes an Email from MessagePack bytes.
func FromMessagePack(data []byte) (*Email, error) {
	var e Email
	if _, err := e.UnmarshalMsg(data); err != nil {
		return nil, err
	}
	return &e, nil
}
