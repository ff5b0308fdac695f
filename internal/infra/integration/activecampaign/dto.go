package activecampaign

// IDs dos campos customizados de deal na conta HudLab.
// Mapeados aqui uma única vez; o sync transforma em colunas nomeadas.
const (
	FieldClosingDate = "5"
	FieldState       = "13"
	FieldPairsSold   = "21"
	FieldSalesperson = "25"
	FieldDesigner    = "27"
	FieldUtmSource   = "31"
	FieldUtmMedium   = "32"
)

// Deal como o AC devolve em /api/3/deals. Value é string decimal,
// status vem como "0"/"1"/"2".
type Deal struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Value        string `json:"value"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	Stage        string `json:"stage"`
	Contact      string `json:"contact"`
	Organization string `json:"organization"`
	CreatedDate  string `json:"cdate"`
}

type listDealsResponse struct {
	Deals []Deal `json:"deals"`
	Meta  struct {
		Total string `json:"total"`
	} `json:"meta"`
}

type getDealResponse struct {
	Deal Deal `json:"deal"`
}

// CustomFieldDatum é um valor de campo customizado de /api/3/dealCustomFieldData.
type CustomFieldDatum struct {
	DealID  string `json:"dealId"`
	FieldID string `json:"customFieldId"`
	Value   string `json:"fieldValue"`
}

type listCustomFieldDataResponse struct {
	Data []CustomFieldDatum `json:"dealCustomFieldData"`
}

type DealStage struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order string `json:"order"`
}

type listStagesResponse struct {
	Stages []DealStage `json:"dealStages"`
}
