// Package dataset holds the demo corpus: simulated transaction emails and
// company policy documents, in Spanish for unambiguous retrieval demos.
package dataset

import (
	"time"

	"github.com/w-h-a/expensebot/record"
)

func Emails() []record.Record {
	return []record.Record{
		{
			Id:        "amazon-receipt-001",
			Title:     "Amazon - Recibo de Compra MacBook Pro",
			Content:   "De: auto-confirm@amazon.com. Asunto: Tu pedido ha sido enviado. Estimado Cliente, tu pedido de Amazon #112-7854621-1234567 ha sido enviado. Artículo: Apple MacBook Pro 13 pulgadas chip M2. Precio: $1,299.00. Envío: GRATIS. Fecha estimada de entrega: 15 de diciembre, 2024. Método de pago: Visa terminada en 4532.",
			Category:  "comprobante-compra",
			Timestamp: time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC),
		},
		{
			Id:        "netflix-subscription-001",
			Title:     "Netflix - Cargo Mensual de Suscripción",
			Content:   "De: info@account.netflix.com. Asunto: Tu recibo de pago de Netflix. Hola, hemos procesado tu pago mensual de suscripción a Netflix. Monto: $15.99. Fecha: 1 de diciembre, 2024. Método de pago: Tarjeta de Crédito terminada en 9876. Plan: Estándar (2 pantallas HD). Próxima fecha de facturación: 1 de enero, 2025.",
			Category:  "cargo-suscripcion",
			Timestamp: time.Date(2024, 12, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			Id:        "bank-login-001",
			Title:     "Bank of America - Notificación de Inicio de Sesión",
			Content:   "De: alerts@bankofamerica.com. Asunto: Alerta de acceso a tu cuenta. Hemos detectado un inicio de sesión en tu cuenta de Bank of America desde un dispositivo nuevo. Fecha: 10 de diciembre, 2024 a las 2:15 PM PST. Ubicación: Seattle, WA. Dispositivo: iPhone Safari.",
			Category:  "seguridad-bancaria",
			Timestamp: time.Date(2024, 12, 10, 22, 15, 0, 0, time.UTC),
		},
		{
			Id:        "spotify-promo-001",
			Title:     "Spotify Premium - Oferta 3 Meses Gratis",
			Content:   "De: noreply@spotify.com. Asunto: ¡3 meses de Premium, por nuestra cuenta! Hola Amante de la Música, obtén 3 meses de Spotify Premium absolutamente GRATIS. Normalmente $9.99/mes, ahora $0 para usuarios calificados. La oferta expira el 31 de diciembre, 2024.",
			Category:  "oferta-promocional",
			Timestamp: time.Date(2024, 12, 3, 16, 45, 0, 0, time.UTC),
		},
		{
			Id:        "target-receipt-001",
			Title:     "Target - Recibo de Tienda Artículos del Hogar",
			Content:   "De: receipts@target.com. Asunto: ¡Gracias por comprar con nosotros! Recibo #REF0123456789. Tienda #1234, Seattle WA. Fecha: 8 de diciembre, 2024 3:47 PM. Subtotal: $37.36. Impuestos: $3.36. Total: $40.72. Pagado con: Target RedCard terminada en 5678.",
			Category:  "comprobante-compra",
			Timestamp: time.Date(2024, 12, 8, 23, 47, 0, 0, time.UTC),
		},
		{
			Id:        "chase-statement-001",
			Title:     "Chase - Estado de Cuenta Tarjeta de Crédito",
			Content:   "De: chase@alertsp.chase.com. Asunto: Tu estado de cuenta de diciembre está listo. Tu estado de cuenta de la tarjeta de crédito Chase Sapphire Preferred ya está disponible. Saldo actual: $892.45. Pago mínimo: $35.00. Fecha límite de pago: 3 de enero, 2025.",
			Category:  "estado-bancario",
			Timestamp: time.Date(2024, 12, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			Id:        "starbucks-rewards-001",
			Title:     "Starbucks Rewards - Bebida de Cumpleaños Gratis",
			Content:   "De: info@starbucks.com. Asunto: ¡Feliz Cumpleaños! Tu bebida gratis te espera. Como miembro de Starbucks Rewards, disfruta CUALQUIER bebida artesanal por nuestra cuenta. Esta oferta es válida por 30 días desde tu cumpleaños. Tu balance actual de Stars: 340 Stars.",
			Category:  "oferta-promocional",
			Timestamp: time.Date(2024, 12, 5, 12, 0, 0, 0, time.UTC),
		},
		{
			Id:        "paypal-payment-001",
			Title:     "PayPal - Confirmación de Pago Office365",
			Content:   "De: service@paypal.com. Asunto: Enviaste un pago a Microsoft Corporation. Enviaste $12.99 USD a Microsoft Corporation. ID de transacción: 8XY123456789ABC. Fecha: 9 de diciembre, 2024. Para: Suscripción Anual Microsoft 365 Personal.",
			Category:  "cargo-suscripcion",
			Timestamp: time.Date(2024, 12, 9, 14, 20, 0, 0, time.UTC),
		},
		{
			Id:        "wells-fargo-transfer-001",
			Title:     "Wells Fargo - Confirmación de Transferencia",
			Content:   "De: alerts@wellsfargo.com. Asunto: Transferencia completada exitosamente. Tu transferencia ha sido completada. Desde: Wells Fargo Cuenta Corriente (...4567). Hacia: Wells Fargo Cuenta de Ahorros (...8901). Monto: $2,500.00. Fecha: 11 de diciembre, 2024.",
			Category:  "transferencia-bancaria",
			Timestamp: time.Date(2024, 12, 11, 21, 23, 0, 0, time.UTC),
		},
		{
			Id:        "uber-trip-001",
			Title:     "Uber - Recibo de Viaje Centro Seattle",
			Content:   "De: receipts@uber.com. Asunto: Viaje con Uber completado. ¡Gracias por viajar con Uber! Fecha del viaje: 12 de diciembre, 2024 a las 8:45 AM. Desde: 1201 3rd Ave, Seattle WA. Hacia: Aeropuerto Seattle-Tacoma (SEA). Total: $31.47. Pago: Visa terminada en 7890.",
			Category:  "transporte",
			Timestamp: time.Date(2024, 12, 12, 16, 45, 0, 0, time.UTC),
		},
	}
}

// EmailSenders lists the merchants and institutions appearing in the email
// corpus, usable as sender values for structured searches.
func EmailSenders() []string {
	return []string{
		"Amazon",
		"Netflix",
		"Bank of America",
		"Spotify",
		"Target",
		"Chase",
		"Starbucks",
		"PayPal",
		"Wells Fargo",
		"Uber",
	}
}

// EmailCategories is the closed category tag set for the email corpus.
func EmailCategories() []string {
	return []string{
		"comprobante-compra",
		"cargo-suscripcion",
		"seguridad-bancaria",
		"oferta-promocional",
		"estado-bancario",
		"transferencia-bancaria",
		"transporte",
	}
}
