package region

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

var zoneNames = map[Region]string{
	Portugal: "Europe/Lisbon",
	Brazil:   "America/Sao_Paulo",
	Mexico:   "America/Mexico_City",
	Spain:    "Europe/Madrid",
	USA:      "America/New_York",
}

var zones = loadZones()

func loadZones() map[Region]*time.Location {
	out := make(map[Region]*time.Location, len(zoneNames))
	for r, name := range zoneNames {
		loc, err := time.LoadLocation(name)
		if err != nil {
			panic(fmt.Sprintf("region: load zone %s: %v", name, err))
		}
		out[r] = loc
	}

	return out
}

// Location возвращает часовой пояс региона. Для неизвестного региона — пояс Default.
func (r Region) Location() *time.Location {
	if loc, ok := zones[r]; ok {
		return loc
	}

	return zones[Default]
}

var months = map[string][12]string{
	"pt": {"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	"en": {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
}

// Ключи переводов, которые используют мапперы и лид-формы.
const (
	KeyImageMissing    = "image.missing"
	KeyCategoryDefault = "category.default"
	KeyEmailInvalid    = "lead.email.invalid"
	KeyLeadFailed      = "lead.submit.failed"
	KeyLeadSucceeded   = "lead.submit.ok"
)

var dictionary = map[string]map[string]string{
	"pt": {
		KeyImageMissing:    "Sem Imagem",
		KeyCategoryDefault: "Geral",
		KeyEmailInvalid:    "Introduza um e-mail válido",
		KeyLeadFailed:      "Não foi possível concluir o pedido. Tente novamente.",
		KeyLeadSucceeded:   "Obrigado! O seu pedido foi registado.",
	},
	"es": {
		KeyImageMissing:    "Sin Imagen",
		KeyCategoryDefault: "General",
		KeyEmailInvalid:    "Introduzca un correo electrónico válido",
		KeyLeadFailed:      "No fue posible completar la solicitud. Inténtelo de nuevo.",
		KeyLeadSucceeded:   "¡Gracias! Su solicitud fue registrada.",
	},
	"en": {
		KeyImageMissing:    "No Image",
		KeyCategoryDefault: "General",
		KeyEmailInvalid:    "Please enter a valid email",
		KeyLeadFailed:      "We could not complete the request. Please try again.",
		KeyLeadSucceeded:   "Thank you! Your request has been recorded.",
	},
}

// Translate возвращает перевод ключа на язык региона.
// Порядок поиска: язык региона -> язык Default -> сам ключ.
func (r Region) Translate(key string) string {
	if msg, ok := dictionary[r.lang()][key]; ok {
		return msg
	}

	if msg, ok := dictionary[Default.lang()][key]; ok {
		return msg
	}

	return key
}

// FormatDate форматирует дату в длинном формате локали региона.
// Календарный день берётся в часовом поясе региона (Location).
// Нулевое время даёт пустую строку.
//
//	pt/br: "5 de março de 2024"
//	mx/es: "5 de marzo de 2024"
//	us:    "March 5, 2024"
func (r Region) FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	t = t.In(r.Location())

	lang := r.lang()
	names, ok := months[lang]
	if !ok {
		lang = Default.lang()
		names = months[lang]
	}

	month := names[t.Month()-1]

	if lang == "en" {
		return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
	}

	return fmt.Sprintf("%d de %s de %d", t.Day(), month, t.Year())
}
