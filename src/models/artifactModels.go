package models

// ArtifactMetadataModel is one catalog record's descriptive fields.
// Pointer fields are nullable: nil means the source did not provide a value.
type ArtifactMetadataModel struct {
	ID              int     `json:"id" gorm:"column:id;primaryKey;autoIncrement:false"`
	Title           *string `json:"title" gorm:"column:title;type:text"`
	Culture         *string `json:"culture" gorm:"column:culture;type:text"`
	Period          *string `json:"period" gorm:"column:period;type:text"`
	Century         *string `json:"century" gorm:"column:century;type:text"`
	Medium          *string `json:"medium" gorm:"column:medium;type:text"`
	Dimensions      *string `json:"dimensions" gorm:"column:dimensions;type:text"`
	Description     *string `json:"description" gorm:"column:description;type:text"`
	Department      *string `json:"department" gorm:"column:department;type:text"`
	Classification  *string `json:"classification" gorm:"column:classification;type:text"`
	AccessionYear   *int    `json:"accessionyear" gorm:"column:accessionyear"`
	AccessionMethod *string `json:"accessionmethod" gorm:"column:accessionmethod;type:text"`

	// Relations exist only so AutoMigrate declares the foreign keys on the
	// child tables. The loader never writes through them.
	Media  *ArtifactMediaModel  `json:"-" gorm:"foreignKey:ObjectID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Colors []ArtifactColorModel `json:"-" gorm:"foreignKey:ObjectID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (ArtifactMetadataModel) TableName() string { return "artifact_metadata" }

// ArtifactMediaModel summarizes the media attached to an artifact.
type ArtifactMediaModel struct {
	ObjectID   int  `json:"objectid" gorm:"column:objectid;primaryKey;autoIncrement:false"`
	ImageCount *int `json:"imagecount" gorm:"column:imagecount"`
	MediaCount *int `json:"mediacount" gorm:"column:mediacount"`
	ColorCount *int `json:"colorcount" gorm:"column:colorcount"`
	Rank       *int `json:"rank_value" gorm:"column:rank_value"`
	DateBegin  *int `json:"datebegin" gorm:"column:datebegin"`
	DateEnd    *int `json:"dateend" gorm:"column:dateend"`
}

func (ArtifactMediaModel) TableName() string { return "artifact_media" }

// ArtifactColorModel is one color swatch extracted from an artifact image.
// Position is the swatch's index in the source list; together with ObjectID
// it forms the key that makes reloading the same swatches a no-op.
type ArtifactColorModel struct {
	ObjectID int      `json:"objectid" gorm:"column:objectid;primaryKey;autoIncrement:false"`
	Position int      `json:"position" gorm:"column:position;primaryKey;autoIncrement:false"`
	Color    *string  `json:"color" gorm:"column:color;type:text"`
	Spectrum *string  `json:"spectrum" gorm:"column:spectrum;type:text"`
	Hue      *string  `json:"hue" gorm:"column:hue;type:text"`
	Percent  *float64 `json:"percent" gorm:"column:percent"`
	CSS3     *string  `json:"css3" gorm:"column:css3;type:text"`
}

func (ArtifactColorModel) TableName() string { return "artifact_colors" }

// ArtifactTables lists the artifact models in dependency order.
func ArtifactTables() []any {
	return []any{&ArtifactMetadataModel{}, &ArtifactMediaModel{}, &ArtifactColorModel{}}
}
