package catalog

// Galaxy is one catalog row. PreviousID/NextID are fixed at import time from
// row order and are not guaranteed to be symmetric or acyclic.
type Galaxy struct {
	ID            string   `gorm:"primaryKey;column:id" json:"id"`
	RA            float64  `gorm:"not null;column:ra" json:"ra"`
	Dec           float64  `gorm:"not null;column:dec" json:"dec"`
	X             *float64 `gorm:"column:x" json:"x"`
	Y             *float64 `gorm:"column:y" json:"y"`
	RedshiftX     *float64 `gorm:"column:redshift_x" json:"redshift_x"`
	RedshiftY     *float64 `gorm:"column:redshift_y" json:"redshift_y"`
	RadiusR       *float64 `gorm:"column:r_r" json:"r_r"`
	AxisRatio     *float64 `gorm:"column:q" json:"q"`
	PositionAngle *float64 `gorm:"column:pa" json:"pa"`
	Nucleus       *bool    `gorm:"column:nucleus" json:"nucleus"`
	PreviousID    *string  `gorm:"column:previous_id;index" json:"previous_id"`
	NextID        *string  `gorm:"column:next_id;index" json:"next_id"`
}

func (Galaxy) TableName() string { return "galaxies" }

// HasRedshift reports whether both redshift marker coordinates are present.
func (g *Galaxy) HasRedshift() bool {
	return g != nil && g.RedshiftX != nil && g.RedshiftY != nil
}

// Link returns the neighbor ID in the requested direction.
func (g *Galaxy) Link(forward bool) *string {
	if g == nil {
		return nil
	}
	if forward {
		return g.NextID
	}
	return g.PreviousID
}

// DisplayParams is the scalar view of a galaxy handed to the image renderer.
type DisplayParams struct {
	ID        string   `json:"ID"`
	X         *float64 `json:"X"`
	Y         *float64 `json:"Y"`
	RedshiftX *float64 `json:"RedshiftX"`
	RedshiftY *float64 `json:"RedshiftY"`
	RadiusR   *float64 `json:"r_r"`
	AxisRatio *float64 `json:"q"`
	PA        *float64 `json:"PA"`
	Nucleus   *bool    `json:"Nucleus"`
}

func (g *Galaxy) DisplayParams() DisplayParams {
	return DisplayParams{
		ID:        g.ID,
		X:         g.X,
		Y:         g.Y,
		RedshiftX: g.RedshiftX,
		RedshiftY: g.RedshiftY,
		RadiusR:   g.RadiusR,
		AxisRatio: g.AxisRatio,
		PA:        g.PositionAngle,
		Nucleus:   g.Nucleus,
	}
}
