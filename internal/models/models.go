package models

// Item types used across the planning API. A raw material can never carry its
// own BOM; a finished product can never appear as a sub-component.
const (
	ItemTypeRawMaterial  = "raw_material"
	ItemTypeIntermediate = "intermediate_product"
	ItemTypeFinished     = "finished_product"
)

// CanBeComponent reports whether items of the given type may be used as a BOM
// component.
func CanBeComponent(itemType string) bool {
	return itemType == ItemTypeRawMaterial || itemType == ItemTypeIntermediate
}

// CanBeParent reports whether items of the given type may own a BOM.
func CanBeParent(itemType string) bool {
	return itemType == ItemTypeIntermediate || itemType == ItemTypeFinished
}

// Item is a planning item as returned by GET /items.
type Item struct {
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	ItemType      string `json:"item_type"`
	UnitOfMeasure string `json:"unit_of_measure"`
	Status        string `json:"status"`
}

// BOMSummary is one row of GET /boms: a top-level product and whether it has
// a BOM defined.
type BOMSummary struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	ItemType string `json:"item_type"`
	HasBOM   bool   `json:"has_bom"`
}

// ComponentRef is one (component, quantity) line of a stored BOM.
type ComponentRef struct {
	ItemSKU  string  `json:"item_sku"`
	Quantity float64 `json:"quantity"`
}

// BOMRecord is the body of GET /boms/{sku}.
type BOMRecord struct {
	Components []ComponentRef `json:"components"`
}

// BOMPayload is the body of POST /boms.
type BOMPayload struct {
	ProductSKU string         `json:"product_sku"`
	Components []ComponentRef `json:"components"`
}

// BOMTreeNode is one node of the server-exploded hierarchy. The tree is
// acyclic and finite; the server guarantees that before the client ever sees
// the structure.
type BOMTreeNode struct {
	SKU           string        `json:"sku"`
	Name          string        `json:"name"`
	ItemType      string        `json:"item_type"`
	Quantity      float64       `json:"quantity"`
	UnitOfMeasure string        `json:"unit_of_measure"`
	Children      []BOMTreeNode `json:"children"`
}

// FlatRequirement is one aggregated row of the exploded BOM: the total
// quantity of an item required across every position in the tree, computed
// server-side.
type FlatRequirement struct {
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	ItemType      string  `json:"item_type"`
	UnitOfMeasure string  `json:"unit_of_measure"`
	TotalQuantity float64 `json:"total_quantity"`
}

// TreeStats is the stats block of GET /boms/tree/{sku}.
type TreeStats struct {
	TotalNodes    int `json:"total_nodes"`
	MaxDepth      int `json:"max_depth"`
	DistinctItems int `json:"distinct_items"`
}

// TreeResponse is the full body of GET /boms/tree/{sku}.
type TreeResponse struct {
	Tree     BOMTreeNode       `json:"tree"`
	Stats    TreeStats         `json:"stats"`
	FlatList []FlatRequirement `json:"flat_list"`
}

// ImportResult is the body returned by server-side file imports.
type ImportResult struct {
	Message string `json:"message"`
}

// ForecastRow is one normalized demand row produced by the local forecast
// workbook mapping and submitted to POST /forecasts/import.
type ForecastRow struct {
	SKU      string  `json:"sku"`
	Period   string  `json:"period"`
	Quantity float64 `json:"quantity"`
}

// ChangeEvent is one message of the server's change feed.
type ChangeEvent struct {
	Type   string `json:"type"`
	ID     any    `json:"id"`
	Action string `json:"action"`
}
