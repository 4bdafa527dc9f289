package form

import (
	"strings"
)

// Messages formats the alerts an import can raise.
type Messages struct {
	ParseFailed   func(err error) string
	ReadFailed    func(err error) string
	MissingFields func(names []string) string
	UnboundFields func(names []string) string
}

// Norwegian is the default message set.
var Norwegian = Messages{
	ParseFailed: func(err error) string {
		return "Kunne ikke lese JSON: " + err.Error()
	},
	ReadFailed: func(err error) string {
		return "Kunne ikke lese filen: " + err.Error()
	},
	MissingFields: func(names []string) string {
		return "Følgende felter mangler i filen: " + strings.Join(names, ", ")
	},
	UnboundFields: func(names []string) string {
		return "Følgende felter finnes ikke i skjemaet: " + strings.Join(names, ", ")
	},
}

// English is the alternative message set.
var English = Messages{
	ParseFailed: func(err error) string {
		return "Could not read JSON: " + err.Error()
	},
	ReadFailed: func(err error) string {
		return "Could not read the file: " + err.Error()
	},
	MissingFields: func(names []string) string {
		return "The following fields are missing from the file: " + strings.Join(names, ", ")
	},
	UnboundFields: func(names []string) string {
		return "The following fields have no input on the form: " + strings.Join(names, ", ")
	},
}

// MessagesFor returns the message set for a locale tag such as "nb" or
// "en-US". Norwegian tags (nb, nn, no) select [Norwegian]; an empty tag
// also does. Anything else gets [English].
func MessagesFor(locale string) Messages {
	lang, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(locale)), "-")
	lang, _, _ = strings.Cut(lang, "_")
	switch lang {
	case "", "nb", "nn", "no":
		return Norwegian
	}
	return English
}

// withDefaults fills unset formatters from Norwegian.
func (m Messages) withDefaults() Messages {
	if m.ParseFailed == nil {
		m.ParseFailed = Norwegian.ParseFailed
	}
	if m.ReadFailed == nil {
		m.ReadFailed = Norwegian.ReadFailed
	}
	if m.MissingFields == nil {
		m.MissingFields = Norwegian.MissingFields
	}
	if m.UnboundFields == nil {
		m.UnboundFields = Norwegian.UnboundFields
	}
	return m
}
