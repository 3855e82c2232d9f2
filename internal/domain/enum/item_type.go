package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// ItemType classifies a quote or invoice line item
type ItemType int

const (
	ItemTypeService  ItemType = 0
	ItemTypePart     ItemType = 1
	ItemTypeLabor    ItemType = 2
	ItemTypeFee      ItemType = 3
	ItemTypeDiscount ItemType = 4
)

func (t ItemType) String() string {
	return [...]string{"Service", "Part", "Labor", "Fee", "Discount"}[t]
}

// ParseItemType maps a case-insensitive name to an ItemType.
func ParseItemType(s string) (ItemType, bool) {
	switch strings.ToLower(s) {
	case "service":
		return ItemTypeService, true
	case "part":
		return ItemTypePart, true
	case "labor":
		return ItemTypeLabor, true
	case "fee":
		return ItemTypeFee, true
	case "discount":
		return ItemTypeDiscount, true
	}
	return ItemTypeService, false
}

func (t ItemType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ItemType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = ItemType(i)
		return nil
	}
	if parsed, ok := ParseItemType(str); ok {
		*t = parsed
	}
	return nil
}

func (t ItemType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *ItemType) Scan(value interface{}) error {
	if value == nil {
		*t = ItemTypeService
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = ItemType(v)
	case int:
		*t = ItemType(v)
	}
	return nil
}
