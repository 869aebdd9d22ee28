package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// descriptor shape
	DscInfo               Code = 1000
	DscDecode             Code = 1001
	DscUnknownOption      Code = 1002
	DscDuplicateClass     Code = 1003
	DscDuplicateField     Code = 1004
	DscBadName            Code = 1005
	DscMissingType        Code = 1006
	DscConflictingOptions Code = 1007
	DscEmpty              Code = 1008

	// type resolution
	TypInfo            Code = 2000
	TypUnresolved      Code = 2001
	TypAmbiguous       Code = 2002
	TypBadSyntax       Code = 2003
	TypPrimitiveParent Code = 2004
	TypCyclicExtends   Code = 2005
	TypNotInterface    Code = 2006

	// generation
	GenInfo     Code = 3000
	GenRejected Code = 3001
	GenSkipped  Code = 3002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	DscInfo:               "Descriptor information",
	DscDecode:             "Descriptor cannot be decoded",
	DscUnknownOption:      "Unknown option",
	DscDuplicateClass:     "Class declared twice",
	DscDuplicateField:     "Field declared twice",
	DscBadName:            "Invalid Java identifier",
	DscMissingType:        "Field has no type",
	DscConflictingOptions: "Option and its negation both set",
	DscEmpty:              "Descriptor declares no classes",
	TypInfo:               "Type information",
	TypUnresolved:         "Type cannot be resolved",
	TypAmbiguous:          "Simple name matches several classes",
	TypBadSyntax:          "Malformed type expression",
	TypPrimitiveParent:    "Primitive type cannot be extended",
	TypCyclicExtends:      "Cyclic inheritance",
	TypNotInterface:       "Implemented type is not an interface",
	GenInfo:               "Generation information",
	GenRejected:           "Declaration rejected by the code model",
	GenSkipped:            "Member not generated",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DSC%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("GEN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
