package block

import "fmt"

// Kind identifies a concrete block variant.
type Kind uint8

const (
	// KindRoot is the document root.
	KindRoot Kind = iota

	// KindLine is a paragraph/outline line.
	KindLine

	// KindInlineOption is a two-slot option widget embedded in a line.
	KindInlineOption

	// KindOption is one slot of an inline option widget.
	KindOption

	// KindText is a plain inline text leaf.
	KindText
)

// String returns the kind name used in dumps and logs.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindLine:
		return "line"
	case KindInlineOption:
		return "inline-option"
	case KindOption:
		return "option"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Class groups kinds by their structural capabilities.
type Class uint8

const (
	ClassRoot Class = iota
	ClassLine
	ClassInlineContainer
	ClassInlineLeaf
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassRoot:
		return "root"
	case ClassLine:
		return "line"
	case ClassInlineContainer:
		return "inline-container"
	case ClassInlineLeaf:
		return "inline-leaf"
	default:
		return fmt.Sprintf("Class(%d)", c)
	}
}

// Class returns the structural class of the kind.
func (k Kind) Class() Class {
	switch k {
	case KindRoot:
		return ClassRoot
	case KindLine:
		return ClassLine
	case KindInlineOption:
		return ClassInlineContainer
	default:
		return ClassInlineLeaf
	}
}

// HasChildren reports whether blocks of this kind own a children list.
func (k Kind) HasChildren() bool {
	return k == KindRoot || k == KindLine
}

// HasInline reports whether blocks of this kind own an inline list.
func (k Kind) HasInline() bool {
	return k == KindLine || k == KindInlineOption
}

// Role distinguishes the two lists a block may own.
type Role uint8

const (
	// RoleChildren holds nested line blocks.
	RoleChildren Role = iota

	// RoleInline holds inline blocks embedded in the owner's text.
	RoleInline
)

// String returns the role name.
func (r Role) String() string {
	if r == RoleInline {
		return "inline"
	}
	return "children"
}

// accepts reports whether a list with this role, owned by a block of kind
// owner, may contain blocks of kind k.
func (r Role) accepts(owner, k Kind) bool {
	switch r {
	case RoleChildren:
		return k == KindLine
	case RoleInline:
		switch owner {
		case KindLine:
			return k == KindInlineOption || k == KindText
		case KindInlineOption:
			return k == KindOption || k == KindText
		}
	}
	return false
}
