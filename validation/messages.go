package validation

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is the catalog every code is guaranteed to have a message
// in; lookups for other languages fall back to it.
const DefaultLanguage = "en"

// Catalog maps languages to per-code message texts.
type Catalog struct {
	matcher   language.Matcher
	languages []string
	messages  map[string]map[Code]string
}

// NewCatalog builds the built-in catalog.
func NewCatalog() *Catalog {
	messages := map[string]map[Code]string{
		"en": englishMessages,
		"es": spanishMessages,
	}

	languages := []string{DefaultLanguage}
	tags := []language.Tag{language.MustParse(DefaultLanguage)}
	for lang := range messages {
		if lang == DefaultLanguage {
			continue
		}
		languages = append(languages, lang)
		tags = append(tags, language.MustParse(lang))
	}

	return &Catalog{
		matcher:   language.NewMatcher(tags),
		languages: languages,
		messages:  messages,
	}
}

// Message returns the text for a code in the requested language, falling
// back to the default language when the language or the key is missing.
func (c *Catalog) Message(code Code, lang string) string {
	table := c.messages[DefaultLanguage]
	if lang != "" && lang != DefaultLanguage {
		if tag, err := language.Parse(lang); err == nil {
			_, index, conf := c.matcher.Match(tag)
			if conf >= language.High {
				if t, ok := c.messages[c.languages[index]]; ok {
					table = t
				}
			}
		}
	}

	if msg, ok := table[code]; ok {
		return msg
	}
	if msg, ok := c.messages[DefaultLanguage][code]; ok {
		return msg
	}
	return code.String()
}

var englishMessages = map[Code]string{
	InvalidKindOption:  "Invalid data kind option.",
	KindNotAnArray:     "The data kind clause is not a list.",
	RangeNotAnObject:   "The range clause is not an object.",
	ExpectingDimension: "Expecting exactly one data dimension.",

	OK: "Idle.",

	NotAnObject:    "Value is not an object.",
	NotAnArray:     "Value is not an array.",
	EmptyObject:    "Object is empty.",
	UnknownTerm:    "Unknown descriptor.",
	NotADescriptor: "Term is not a descriptor.",
	NotAScalar:     "Value is not a scalar.",

	MissingScalarType: "Scalar section is missing its data type.",
	NotABoolean:       "Value is not a boolean.",
	NotAnInteger:      "Value is not an integer.",
	NotANumber:        "Value is not a number.",

	ValueOutOfRange: "Value is out of range.",
	ValueLowRange:   "Value is below the valid range.",
	ValueHighRange:  "Value is above the valid range.",
	NotATimestamp:   "Value cannot be interpreted as a timestamp.",
	Unsupported:     "Unsupported data type.",

	NotAString:    "Value is not a string.",
	NoMatchRegexp: "Value does not match the required pattern.",

	EmptyKey:                "Key value is empty.",
	NotAnEnum:               "Term is not an enumeration element.",
	NotAStructureDefinition: "Term is not a structure definition.",
	NoRefDefaultNamespace:   "References to the default namespace are not allowed.",
	UnknownDocument:         "Document not found.",
	BadKeyValue:             "Invalid document key value.",
	BadHandleValue:          "Invalid document handle value.",
	BadCollectionName:       "Invalid collection name.",
	UnknownCollection:       "Collection not found.",
	ValueNotTerm:            "Value does not resolve to a term.",
	NotCorrectEnumType:      "Term does not belong to the required enumeration type.",
	DuplicateSetElement:     "Set contains duplicate elements.",

	StoreError: "Dictionary store error.",
	Cancelled:  "Validation cancelled.",
}

var spanishMessages = map[Code]string{
	InvalidKindOption:  "Opción de clase de datos inválida.",
	KindNotAnArray:     "La cláusula de clase de datos no es una lista.",
	RangeNotAnObject:   "La cláusula de rango no es un objeto.",
	ExpectingDimension: "Se espera exactamente una dimensión de datos.",

	OK: "Inactivo.",

	NotAnObject:    "El valor no es un objeto.",
	NotAnArray:     "El valor no es una lista.",
	EmptyObject:    "El objeto está vacío.",
	UnknownTerm:    "Descriptor desconocido.",
	NotADescriptor: "El término no es un descriptor.",
	NotAScalar:     "El valor no es un escalar.",

	MissingScalarType: "La sección escalar no tiene tipo de datos.",
	NotABoolean:       "El valor no es un booleano.",
	NotAnInteger:      "El valor no es un entero.",
	NotANumber:        "El valor no es un número.",

	ValueOutOfRange: "El valor está fuera de rango.",
	ValueLowRange:   "El valor está por debajo del rango válido.",
	ValueHighRange:  "El valor está por encima del rango válido.",
	NotATimestamp:   "El valor no puede interpretarse como marca de tiempo.",
	Unsupported:     "Tipo de datos no soportado.",

	NotAString:    "El valor no es una cadena.",
	NoMatchRegexp: "El valor no coincide con el patrón requerido.",

	EmptyKey:                "La clave está vacía.",
	NotAnEnum:               "El término no es un elemento de enumeración.",
	NotAStructureDefinition: "El término no es una definición de estructura.",
	NoRefDefaultNamespace:   "No se permiten referencias al espacio de nombres por defecto.",
	UnknownDocument:         "Documento no encontrado.",
	BadKeyValue:             "Valor de clave de documento inválido.",
	BadHandleValue:          "Valor de identificador de documento inválido.",
	BadCollectionName:       "Nombre de colección inválido.",
	UnknownCollection:       "Colección no encontrada.",
	ValueNotTerm:            "El valor no se resuelve a un término.",
	NotCorrectEnumType:      "El término no pertenece al tipo de enumeración requerido.",
	DuplicateSetElement:     "El conjunto contiene elementos duplicados.",

	StoreError: "Error del almacén del diccionario.",
	Cancelled:  "Validación cancelada.",
}
