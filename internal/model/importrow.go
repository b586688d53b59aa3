package model

// ImportRow is one line of the destination catalog import CSV.
type ImportRow struct {
	ExternalRef   string
	Name          string
	SKU           string
	Slug          string
	CommodityType string
	Description   string
	Status        string
	Tags          string
	MainImageID   string
	Price         string
}

// ImportRowHeaders is the CSV column order expected by the import endpoint.
var ImportRowHeaders = []string{
	"external_ref", "name", "sku", "slug", "commodity_type",
	"description", "status", "tags", "main_image_id", "price",
}

func (r ImportRow) Record() []string {
	return []string{
		r.ExternalRef, r.Name, r.SKU, r.Slug, r.CommodityType,
		r.Description, r.Status, r.Tags, r.MainImageID, r.Price,
	}
}

func ImportRowFromRecord(rec []string) ImportRow {
	var r ImportRow
	fields := []*string{
		&r.ExternalRef, &r.Name, &r.SKU, &r.Slug, &r.CommodityType,
		&r.Description, &r.Status, &r.Tags, &r.MainImageID, &r.Price,
	}
	for i := range fields {
		if i < len(rec) {
			*fields[i] = rec[i]
		}
	}
	return r
}
