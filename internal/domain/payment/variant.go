package payment

// Variant is the closed set of payment sub-form shapes. Only types in this
// package implement it.
type Variant interface {
	Value() string
	Details() Details
	variant()
}

// NoticeLevel is the visual weight of a notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
)

// Notice is an informational banner inside a sub-form.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// FieldSpec is one input of a sub-form.
type FieldSpec struct {
	Label       string
	Type        string
	Placeholder string
}

// Details is what a sub-form renders. A zero Details renders nothing.
type Details struct {
	Title  string
	Fields []FieldSpec
	Notice *Notice
}

// Empty reports whether the sub-form has no content.
func (d Details) Empty() bool {
	return d.Title == "" && len(d.Fields) == 0 && d.Notice == nil
}

type (
	// CardVariant collects card number, expiry, CVV and holder.
	CardVariant struct{}
	// MobileMoneyVariant collects a phone number for an operator redirect.
	MobileMoneyVariant struct{ Operator string }
	// PayPalVariant redirects to PayPal.
	PayPalVariant struct{}
	// BankTransferVariant sends bank details after confirmation.
	BankTransferVariant struct{}
	// CashOnDeliveryVariant needs no details.
	CashOnDeliveryVariant struct{}
	// UnknownVariant is any value outside the known set. It renders nothing.
	UnknownVariant struct{ Raw string }
)

var (
	_ Variant = CardVariant{}
	_ Variant = MobileMoneyVariant{}
	_ Variant = PayPalVariant{}
	_ Variant = BankTransferVariant{}
	_ Variant = CashOnDeliveryVariant{}
	_ Variant = UnknownVariant{}
)

// Parse maps a method value to its variant. Unknown values are not an error.
func Parse(value string) Variant {
	switch value {
	case Card:
		return CardVariant{}
	case MoovMoney, OrangeMoney, MTNMoney, Wave:
		return MobileMoneyVariant{Operator: value}
	case PayPal:
		return PayPalVariant{}
	case BankTransfer:
		return BankTransferVariant{}
	case Cash:
		return CashOnDeliveryVariant{}
	default:
		return UnknownVariant{Raw: value}
	}
}

func (CardVariant) Value() string { return Card }

func (CardVariant) Details() Details {
	return Details{
		Title: "Informations de la carte",
		Fields: []FieldSpec{
			{Label: "Numéro de carte", Type: "text", Placeholder: "1234 5678 9012 3456"},
			{Label: "Date d'expiration", Type: "text", Placeholder: "MM/AA"},
			{Label: "CVV", Type: "text", Placeholder: "123"},
			{Label: "Titulaire de la carte", Type: "text", Placeholder: "Nom sur la carte"},
		},
	}
}

func (v MobileMoneyVariant) Value() string { return v.Operator }

func (v MobileMoneyVariant) Details() Details {
	return Details{
		Title: "Informations " + v.Operator,
		Fields: []FieldSpec{
			{Label: "Numéro de téléphone", Type: "tel", Placeholder: "+225 XX XX XX XX XX"},
		},
		Notice: &Notice{
			Level: NoticeInfo,
			Text:  "Vous serez redirigé vers la page de paiement sécurisé de " + v.Operator,
		},
	}
}

func (PayPalVariant) Value() string { return PayPal }

func (PayPalVariant) Details() Details {
	return Details{
		Title:  "Paiement via PayPal",
		Notice: &Notice{Level: NoticeInfo, Text: "Vous serez redirigé vers PayPal pour finaliser votre paiement"},
	}
}

func (BankTransferVariant) Value() string { return BankTransfer }

func (BankTransferVariant) Details() Details {
	return Details{
		Title:  "Virement bancaire",
		Notice: &Notice{Level: NoticeWarning, Text: "Vous recevrez les coordonnées bancaires après confirmation de commande"},
	}
}

func (CashOnDeliveryVariant) Value() string { return Cash }
func (CashOnDeliveryVariant) Details() Details { return Details{} }
func (v UnknownVariant) Value() string { return v.Raw }
func (UnknownVariant) Details() Details { return Details{} }
func (CardVariant) variant() {}
func (MobileMoneyVariant) variant() {}
func (PayPalVariant) variant() {}
func (BankTransferVariant) variant() {}
func (CashOnDeliveryVariant) variant() {}
func (UnknownVariant) variant() {}
