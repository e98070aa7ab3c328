package apify

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/woningspotters/woningspotters-api/internal/models"
)

const placeholderPhoto = "/placeholder.jpg"

var errNotArray = errors.New("dataset items are not a JSON array")

// ParseItems maps a JSON array of dataset items onto listings.
func ParseItems(raw []byte) ([]models.Listing, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("dataset items are not valid JSON")
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, errNotArray
	}
	items := doc.Array()
	listings := make([]models.Listing, 0, len(items))
	for _, item := range items {
		listings = append(listings, MapItem(item))
	}
	return listings, nil
}

// MapItem converts one scraper item. Scrapers disagree on key names, so
// each field is read from the first populated key of its English and Dutch
// spellings.
func MapItem(item gjson.Result) models.Listing {
	l := models.Listing{
		ID:           orDefault(str(first(item, "id", "url")), uuid.NewString()),
		Titel:        orDefault(str(first(item, "title", "naam")), "Woning"),
		Adres:        str(first(item, "address", "adres")),
		Postcode:     str(first(item, "postalCode", "postcode")),
		Plaats:       str(first(item, "city", "plaats")),
		Prijs:        price(first(item, "price", "prijs")),
		Kamers:       integer(first(item, "rooms", "kamers")),
		Oppervlakte:  integer(first(item, "area", "oppervlakte")),
		Foto:         orDefault(str(first(item, "image", "foto", "images.0")), placeholderPhoto),
		Type:         orDefault(str(first(item, "propertyType", "type")), "Woning"),
		URL:          orDefault(str(first(item, "url")), "#"),
		Makelaar:     str(first(item, "realtor", "makelaar")),
		Beschrijving: str(first(item, "description", "beschrijving")),
		Bouwjaar:     integer(first(item, "yearBuilt", "bouwjaar")),
		Energielabel: str(first(item, "energyLabel", "energielabel")),
	}

	for _, key := range []string{"images", "fotos"} {
		if arr := item.Get(key); arr.IsArray() {
			for _, v := range arr.Array() {
				if s := v.String(); s != "" {
					l.Fotos = append(l.Fotos, s)
				}
			}
			break
		}
	}
	return l
}

func first(item gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		v := item.Get(k)
		if !v.Exists() || v.Type == gjson.Null || v.Type == gjson.False {
			continue
		}
		if v.Type == gjson.String && v.Str == "" {
			continue
		}
		if v.Type == gjson.Number && v.Num == 0 {
			continue
		}
		return v
	}
	return gjson.Result{}
}

func str(v gjson.Result) string {
	if !v.Exists() {
		return ""
	}
	return v.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// price keeps only the digits of string prices ("€ 425.000 k.k.").
func price(v gjson.Result) int {
	switch v.Type {
	case gjson.Number:
		return int(v.Int())
	case gjson.String:
		var b strings.Builder
		for _, r := range v.Str {
			if r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		n, _ := strconv.Atoi(b.String())
		return n
	}
	return 0
}

// integer reads the leading integer of the value, so "3 kamers" is 3.
func integer(v gjson.Result) int {
	switch v.Type {
	case gjson.Number:
		return int(v.Int())
	case gjson.String:
		s := strings.TrimLeftFunc(v.Str, unicode.IsSpace)
		end := 0
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		n, _ := strconv.Atoi(s[:end])
		return n
	}
	return 0
}
