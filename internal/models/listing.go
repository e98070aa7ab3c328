package models

// Listing is one property returned by a search. Field names follow the
// frontend contract.
type Listing struct {
	ID           string   `json:"id"`
	Titel        string   `json:"titel"`
	Adres        string   `json:"adres"`
	Postcode     string   `json:"postcode"`
	Plaats       string   `json:"plaats"`
	Prijs        int      `json:"prijs"`
	Kamers       int      `json:"kamers"`
	Oppervlakte  int      `json:"oppervlakte"`
	Foto         string   `json:"foto"`
	Fotos        []string `json:"fotos,omitempty"`
	Type         string   `json:"type"`
	URL          string   `json:"url"`
	Makelaar     string   `json:"makelaar,omitempty"`
	Beschrijving string   `json:"beschrijving,omitempty"`
	Bouwjaar     int      `json:"bouwjaar,omitempty"`
	Energielabel string   `json:"energielabel,omitempty"`
}
