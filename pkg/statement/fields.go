package statement

// Column names of a Rabobank CSV export.
const (
	FieldIBAN             = "IBAN/BBAN"
	FieldCurrency         = "Munt"
	FieldSequence         = "Volgnr"
	FieldDate             = "Datum"
	FieldAmount           = "Bedrag"
	FieldOtherPartyNumber = "Tegenrekening IBAN/BBAN"
	FieldOtherPartyName   = "Naam tegenpartij"
	FieldDescription1     = "Omschrijving-1"
	FieldDescription2     = "Omschrijving-2"
	FieldDescription3     = "Omschrijving-3"
)

// OwnAccountName is the name given to a statement account the first time
// it is seen.
const OwnAccountName = "Own account"

// requiredFields must be present as columns in every row.
var requiredFields = []string{
	FieldIBAN,
	FieldCurrency,
	FieldSequence,
	FieldDate,
	FieldAmount,
	FieldOtherPartyNumber,
	FieldOtherPartyName,
	FieldDescription1,
	FieldDescription2,
	FieldDescription3,
}

// nonEmptyFields must also hold a value.
var nonEmptyFields = []string{
	FieldIBAN,
	FieldSequence,
	FieldDate,
	FieldAmount,
}
