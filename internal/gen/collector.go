package gen

import (
	"regexp"

	"github.com/roach88/glgen/internal/decl"
	"github.com/roach88/glgen/internal/ir"
	"github.com/roach88/glgen/internal/logger"
)

var (
	// bitmaskName matches flag-bit names such as GL_DEPTH_BUFFER_BIT,
	// GL_MAP_INVALIDATE_BUFFER_BIT_EXT and GL_COLOR_BUFFER_BIT1_QCOM, but not
	// GL_DEPTH_BITS or GL_QUERY_COUNTER_BITS_EXT.
	bitmaskName = regexp.MustCompile(`_BIT($|\d*_)`)

	// hexValue excludes GL_TRUE, GL_FALSE and other non-value markers.
	hexValue = regexp.MustCompile(`0x[0-9A-Fa-f]+`)
)

// defaultEnumType is the signed-int tag that gets no literal suffix.
const defaultEnumType = "i"

// EnumRejection says why an enum was left out of the table.
type EnumRejection string

const (
	EnumAccepted  EnumRejection = ""
	EnumBitmask   EnumRejection = "bitmask"
	EnumNotHex    EnumRejection = "not_hex"
	EnumDuplicate EnumRejection = "duplicate"
)

// Collector accumulates commands and enums across a sequence of selections.
type Collector struct {
	commands []ir.Command
	enums    *EnumTable
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{enums: NewEnumTable()}
}

// VisitCommand parses and records a command.
func (c *Collector) VisitCommand(node *ir.Node) error {
	cmd, err := decl.ParseCommand(node)
	if err != nil {
		return err
	}
	c.AddCommand(cmd)
	return nil
}

// VisitEnum records an enum from its name, value and type attributes.
func (c *Collector) VisitEnum(node *ir.Node) error {
	c.AddEnum(ir.Enum{
		Name:  node.Attr("name"),
		Value: node.Attr("value"),
		Type:  node.Attr("type"),
	})
	return nil
}

// AddCommand records one command match.
func (c *Collector) AddCommand(cmd ir.Command) {
	c.commands = append(c.commands, cmd)
}

// AddEnum filters e and inserts it into the enum table.
func (c *Collector) AddEnum(e ir.Enum) EnumRejection {
	if bitmaskName.MatchString(e.Name) {
		return EnumBitmask
	}
	if !hexValue.MatchString(e.Value) {
		return EnumNotHex
	}

	value := NormalizeEnumValue(e)
	if !c.enums.InsertIfAbsent(value, e.Name) {
		owner, _ := c.enums.Lookup(value)
		logger.Logger.Debugw("enum value already claimed", "value", value, "name", e.Name, "owner", owner)
		return EnumDuplicate
	}
	return EnumAccepted
}

// NormalizeEnumValue appends the literal suffix for non-default type tags,
// e.g. 0xFFFFFFFF with type "u" becomes 0xFFFFFFFFu.
func NormalizeEnumValue(e ir.Enum) string {
	if e.Type != "" && e.Type != defaultEnumType {
		return e.Value + e.Type
	}
	return e.Value
}

// Commands returns the raw accumulated commands in match order.
func (c *Collector) Commands() []ir.Command {
	out := make([]ir.Command, len(c.commands))
	copy(out, c.commands)
	return out
}

// Enums returns the enum table.
func (c *Collector) Enums() *EnumTable {
	return c.enums
}
