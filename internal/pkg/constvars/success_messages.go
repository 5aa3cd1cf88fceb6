package constvars

const (
	SuccessCreatePreference  = "Preferencia de pago creada"
	SuccessGetActionState    = "Estado de acción obtenido"
	SuccessGetLatestOrder    = "Último pedido obtenido"
	SuccessGetQuote          = "Cotización obtenida"
	SuccessGetPrescription   = "Receta obtenida"
	SuccessProcessedCallback = "Callback procesado"
)

// PromptPaymentCompleted is the advisory question shown after handing the
// user off to the hosted checkout page.
const PromptPaymentCompleted = "¿Pudiste completar el pago?"
