package domain

type LineType string

const (
	LineTypeMenu  LineType = "menu"
	LineTypeAddon LineType = "addon"
)

// CartLine snapshots catalog price and name at add time. Later catalog edits
// do not retroactively alter an existing line.
type CartLine struct {
	ItemID    string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"total"`
}

// TaggedLine is a cart line marked with its origin sequence, used as the
// canonical item list for payment and persistence.
type TaggedLine struct {
	CartLine
	Type LineType `json:"type"`
}

func NewCartLine(itemID, name string, unitPrice int64, quantity int) CartLine {
	return CartLine{
		ItemID:    itemID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		LineTotal: unitPrice * int64(quantity),
	}
}

// Cart holds the menu-line and addon-line sequences for one session. No two
// lines in the same sequence share an item id; adds merge quantities.
type Cart struct {
	Lines  []CartLine `json:"cart"`
	Addons []CartLine `json:"addons"`
}

// AddLine appends or merges a menu line. It reports whether the menu sequence
// was empty beforehand, which is the trigger for the staple-addon rule.
func (c *Cart) AddLine(line CartLine) bool {
	wasEmpty := len(c.Lines) == 0
	c.Lines = mergeLine(c.Lines, line)
	return wasEmpty
}

func (c *Cart) UpdateLine(itemID string, quantity int) {
	c.Lines = updateLine(c.Lines, itemID, quantity)
}

func (c *Cart) AddAddonLine(line CartLine) {
	c.Addons = mergeLine(c.Addons, line)
}

func (c *Cart) UpdateAddonLine(itemID string, quantity int) {
	c.Addons = updateLine(c.Addons, itemID, quantity)
}

func (c *Cart) HasAddon(itemID string) bool {
	for _, line := range c.Addons {
		if line.ItemID == itemID {
			return true
		}
	}
	return false
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0 && len(c.Addons) == 0
}

func (c *Cart) Clear() {
	c.Lines = []CartLine{}
	c.Addons = []CartLine{}
}

func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.LineTotal
	}
	for _, line := range c.Addons {
		total += line.LineTotal
	}
	return total
}

// AllLinesTagged returns menu lines followed by addon lines, each tagged with
// its origin.
func (c *Cart) AllLinesTagged() []TaggedLine {
	all := make([]TaggedLine, 0, len(c.Lines)+len(c.Addons))
	for _, line := range c.Lines {
		all = append(all, TaggedLine{CartLine: line, Type: LineTypeMenu})
	}
	for _, line := range c.Addons {
		all = append(all, TaggedLine{CartLine: line, Type: LineTypeAddon})
	}
	return all
}

func mergeLine(lines []CartLine, line CartLine) []CartLine {
	for i, existing := range lines {
		if existing.ItemID == line.ItemID {
			lines[i].Quantity += line.Quantity
			lines[i].LineTotal = lines[i].UnitPrice * int64(lines[i].Quantity)
			return lines
		}
	}
	return append(lines, line)
}

func updateLine(lines []CartLine, itemID string, quantity int) []CartLine {
	for i, line := range lines {
		if line.ItemID == itemID {
			if quantity <= 0 {
				return append(lines[:i], lines[i+1:]...)
			}
			lines[i].Quantity = quantity
			lines[i].LineTotal = line.UnitPrice * int64(quantity)
			return lines
		}
	}
	return lines
}
