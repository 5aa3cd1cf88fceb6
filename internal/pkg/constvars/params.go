package constvars

const (
	URLParamPrescriptionID = "receta_id"
	URLParamQuoteID        = "cotizacion_id"
	URLParamOrderID        = "pedido_id"
)

const (
	URLQueryParamQuoteID = "cotizacion_id"
)
