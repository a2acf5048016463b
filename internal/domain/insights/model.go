package insights

import (
	"encoding/json"
	"fmt"
	"math"
)

// DefaultLimit es el N por defecto de los rankings.
const DefaultLimit = 5

// EngagementReport resume la actividad de un usuario en los tres stores.
type EngagementReport struct {
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	Likes     int    `json:"likes"`
	Feedbacks int    `json:"feedbacks"`
	Adoptions int    `json:"adoptions"`
}

// Ratio es demanda/oferta. Defined=false es el marcador explícito de
// "indefinido" (oferta 0); en JSON se serializa como null.
type Ratio struct {
	Value   float64
	Defined bool
}

func Undefined() Ratio { return Ratio{} }

func NewRatio(demand, supply int) Ratio {
	if supply <= 0 {
		return Undefined()
	}
	return Ratio{Value: float64(demand) / float64(supply), Defined: true}
}

func (r Ratio) String() string {
	if !r.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.2f", r.Value)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined || math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func (r *Ratio) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Ratio{Value: v, Defined: true}
	return nil
}

// DemandSupply es una fila del forecast.
type DemandSupply struct {
	Demand int   `json:"demand"`
	Supply int   `json:"supply"`
	Ratio  Ratio `json:"ratio"`
}

// Forecast agrupa demanda/oferta por raza y por tag.
type Forecast struct {
	ByBreed map[string]DemandSupply `json:"by_breed"`
	ByTag   map[string]DemandSupply `json:"by_tag"`
}
