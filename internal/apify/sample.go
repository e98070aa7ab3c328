package apify

import "github.com/woningspotters/woningspotters-api/internal/models"

// SampleListings is returned when no scraper token is configured so the
// frontend can be developed without a paid account.
func SampleListings(location string) []models.Listing {
	place := func(fallback string) string {
		if location != "" {
			return location
		}
		return fallback
	}
	return []models.Listing{
		{ID: "1", Titel: "Prachtig appartement in centrum", Adres: "Keizersgracht 123", Postcode: "1015 CJ", Plaats: place("Amsterdam"), Prijs: 425000, Kamers: 3, Oppervlakte: 85, Foto: "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=600&h=400&fit=crop", Type: "Appartement", URL: "https://funda.nl", Makelaar: "Makelaardij Amsterdam", Energielabel: "A"},
		{ID: "2", Titel: "Ruime gezinswoning met tuin", Adres: "Willemstraat 45", Postcode: "3511 RJ", Plaats: place("Utrecht"), Prijs: 550000, Kamers: 5, Oppervlakte: 140, Foto: "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=600&h=400&fit=crop", Type: "Rijtjeshuis", URL: "https://funda.nl", Makelaar: "Makelaars Groep", Energielabel: "B"},
		{ID: "3", Titel: "Moderne nieuwbouwwoning", Adres: "Parkweg 78", Postcode: "5611 AH", Plaats: place("Eindhoven"), Prijs: 389000, Kamers: 4, Oppervlakte: 110, Foto: "https://images.unsplash.com/photo-1600585154340-be6161a56a0c?w=600&h=400&fit=crop", Type: "2-onder-1-kap", URL: "https://funda.nl", Makelaar: "Vastgoed Plus", Energielabel: "A++"},
		{ID: "4", Titel: "Karakteristiek herenhuis", Adres: "Oude Haven 12", Postcode: "3011 GE", Plaats: place("Rotterdam"), Prijs: 675000, Kamers: 6, Oppervlakte: 180, Foto: "https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=600&h=400&fit=crop", Type: "Vrijstaand", URL: "https://funda.nl", Makelaar: "Rotterdam Huizen", Energielabel: "C"},
		{ID: "5", Titel: "Luxe penthouse met uitzicht", Adres: "Skyline Tower 42", Postcode: "1012 AB", Plaats: place("Amsterdam"), Prijs: 895000, Kamers: 4, Oppervlakte: 150, Foto: "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=600&h=400&fit=crop", Type: "Penthouse", URL: "https://funda.nl", Makelaar: "Luxury Living", Energielabel: "A+"},
		{ID: "6", Titel: "Gezellige studio in de stad", Adres: "Centrumplein 8", Postcode: "2511 VJ", Plaats: place("Den Haag"), Prijs: 189000, Kamers: 1, Oppervlakte: 35, Foto: "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=600&h=400&fit=crop", Type: "Studio", URL: "https://funda.nl", Makelaar: "City Makelaars", Energielabel: "B"},
	}
}
