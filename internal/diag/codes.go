package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Входные деревья
	TreeInfo              Code = 1000
	TreeDuplicateIdentity Code = 1001
	TreeMalformed         Code = 1002
	TreeTooDeep           Code = 1003

	// Проверки
	CheckInfo                 Code = 2000
	CheckEnclosingUnresolved  Code = 2001
	CheckContextUnavailable   Code = 2002
	CheckUnexpectedAttachment Code = 2003

	// Трансформации
	TransformInfo      Code = 3000
	TransformSkipped   Code = 3001
	TransformNoContext Code = 3002

	// Конфигурация и кеш
	ConfigInfo          Code = 4000
	ConfigUnknownCheck  Code = 4001
	ConfigUnknownCode   Code = 4002
	CacheUnavailable    Code = 4003
	CacheEntryCorrupted Code = 4004
	ConfigUnusedIgnore  Code = 4005
)

var (
	codeDescription = map[Code]string{
		UnknownCode:               "Unknown diagnostic",
		TreeInfo:                  "Input tree information",
		TreeDuplicateIdentity:     "Duplicate element identity",
		TreeMalformed:             "Malformed element tree",
		TreeTooDeep:               "Element tree too deep",
		CheckInfo:                 "Check information",
		CheckEnclosingUnresolved:  "Enclosing element could not be resolved",
		CheckContextUnavailable:   "Check context unavailable",
		CheckUnexpectedAttachment: "Unexpected problem attachment",
		TransformInfo:             "Transform information",
		TransformSkipped:          "Transform skipped",
		TransformNoContext:        "Transform lacks element context",
		ConfigInfo:                "Configuration information",
		ConfigUnknownCheck:        "Unknown check in configuration",
		ConfigUnknownCode:         "Unknown problem code in configuration",
		CacheUnavailable:          "Result cache unavailable",
		CacheEntryCorrupted:       "Result cache entry corrupted",
		ConfigUnusedIgnore:        "Ignore rule matched nothing",
	}
)

// ID is the stable short form, e.g. TRE1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("TRE%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CHK%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TRF%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
