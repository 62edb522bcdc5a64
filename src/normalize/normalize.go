// Package normalize flattens catalog records into the three artifact tables.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/ARQAP/museum-insights/src/models"
	"github.com/antonholmquist/jason"
)

// Batch holds the rows derived from a set of records. Metadata and Media are
// aligned with the input; Colors is flattened across all records.
type Batch struct {
	Metadata []models.ArtifactMetadataModel
	Media    []models.ArtifactMediaModel
	Colors   []models.ArtifactColorModel
}

// Records normalizes every record. It never fails: missing or unusable
// fields become nil.
func Records(records []*jason.Object) Batch {
	batch := Batch{
		Metadata: make([]models.ArtifactMetadataModel, 0, len(records)),
		Media:    make([]models.ArtifactMediaModel, 0, len(records)),
	}

	for _, r := range records {
		id := 0
		if v := intField(r, "id"); v != nil {
			id = *v
		}

		batch.Metadata = append(batch.Metadata, models.ArtifactMetadataModel{
			ID:              id,
			Title:           stringField(r, "title"),
			Culture:         stringField(r, "culture"),
			Period:          stringField(r, "period"),
			Century:         stringField(r, "century"),
			Medium:          stringField(r, "medium"),
			Dimensions:      stringField(r, "dimensions"),
			Description:     stringField(r, "description"),
			Department:      stringField(r, "department"),
			Classification:  stringField(r, "classification"),
			AccessionYear:   intField(r, "accessionyear"),
			AccessionMethod: stringField(r, "accessionmethod"),
		})

		batch.Media = append(batch.Media, models.ArtifactMediaModel{
			ObjectID:   id,
			ImageCount: intField(r, "imagecount"),
			MediaCount: intField(r, "mediacount"),
			ColorCount: intField(r, "colorcount"),
			Rank:       intField(r, "rank"),
			DateBegin:  intField(r, "datebegin"),
			DateEnd:    intField(r, "dateend"),
		})

		// absent, null or non-array colors all mean "no swatches"
		colors, err := r.GetObjectArray("colors")
		if err != nil {
			continue
		}
		for pos, c := range colors {
			batch.Colors = append(batch.Colors, models.ArtifactColorModel{
				ObjectID: id,
				Position: pos,
				Color:    stringField(c, "color"),
				Spectrum: stringField(c, "spectrum"),
				Hue:      stringField(c, "hue"),
				Percent:  floatField(c, "percent"),
				CSS3:     stringField(c, "css3"),
			})
		}
	}
	return batch
}

func value(o *jason.Object, key string) (*jason.Value, bool) {
	v, err := o.GetValue(key)
	if err != nil || v.Null() == nil {
		return nil, false
	}
	return v, true
}

func stringField(o *jason.Object, key string) *string {
	v, ok := value(o, key)
	if !ok {
		return nil
	}
	if s, err := v.String(); err == nil {
		return &s
	}
	// numbers and booleans keep their JSON spelling
	if n, err := v.Number(); err == nil {
		s := n.String()
		return &s
	}
	if b, err := v.Boolean(); err == nil {
		s := strconv.FormatBool(b)
		return &s
	}
	return nil
}

func intField(o *jason.Object, key string) *int {
	v, ok := value(o, key)
	if !ok {
		return nil
	}
	n, err := v.Number()
	if err != nil {
		s, serr := v.String()
		if serr != nil {
			return nil
		}
		n = json.Number(s)
	}
	if i, err := n.Int64(); err == nil {
		out := int(i)
		return &out
	}
	if f, err := n.Float64(); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		out := int(f)
		return &out
	}
	return nil
}

func floatField(o *jason.Object, key string) *float64 {
	v, ok := value(o, key)
	if !ok {
		return nil
	}
	n, err := v.Number()
	if err != nil {
		s, serr := v.String()
		if serr != nil {
			return nil
		}
		n = json.Number(s)
	}
	f, err := n.Float64()
	if err != nil {
		return nil
	}
	return &f
}
