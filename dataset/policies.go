package dataset

import (
	"time"

	"github.com/w-h-a/expensebot/record"
)

func Policies() []record.Record {
	return []record.Record{
		{
			Id:        "policy-gastos-oficina-001",
			Title:     "Política de Gastos de Oficina y Suministros",
			Content:   "POLÍTICA DE GASTOS DE OFICINA: Los empleados pueden realizar gastos de oficina hasta $500 USD por mes sin autorización previa. Para gastos entre $500-$2000 se requiere aprobación del jefe directo. Gastos superiores a $2000 requieren aprobación del departamento financiero. Todos los gastos deben presentar recibo original. Los reembolsos se procesan en 5-7 días hábiles.",
			Category:  "financiero",
			Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			Id:        "policy-viajes-corporativos-001",
			Title:     "Política de Viajes Corporativos y Gastos de Representación",
			Content:   "POLÍTICA DE VIAJES CORPORATIVOS: Vuelos domésticos máximo $800 por trayecto en clase económica. Vuelos internacionales máximo $1500 por trayecto. Hoteles corporativos máximo $200 por noche en ciudades principales. Comidas de negocios hasta $75 por día para empleados. Se requiere pre-aprobación para viajes superiores a $1000. Presentar recibos dentro de 30 días.",
			Category:  "financiero",
			Timestamp: time.Date(2024, 1, 20, 14, 30, 0, 0, time.UTC),
		},
		{
			Id:        "policy-horarios-trabajo-001",
			Title:     "Política de Horarios de Trabajo y Flexibilidad Laboral",
			Content:   "POLÍTICA DE HORARIOS DE TRABAJO: El horario central de oficina es de 9:00 AM a 6:00 PM, lunes a viernes. Se permite trabajo remoto hasta 3 días por semana con aprobación del supervisor. Los martes y jueves son días obligatorios en oficina. Las horas extra requieren autorización previa.",
			Category:  "recursos-humanos",
			Timestamp: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			Id:        "policy-vacaciones-ausencias-001",
			Title:     "Política de Vacaciones y Ausencias Justificadas",
			Content:   "POLÍTICA DE VACACIONES: Los empleados acumulan 1.75 días de vacaciones por mes trabajado (21 días anuales). Después de 3 años de antigüedad se otorgan 25 días anuales. Las vacaciones deben solicitarse con 15 días de anticipación. Días por enfermedad: 10 días anuales, no acumulables.",
			Category:  "recursos-humanos",
			Timestamp: time.Date(2024, 2, 5, 11, 15, 0, 0, time.UTC),
		},
		{
			Id:        "policy-equipos-tecnologia-001",
			Title:     "Política de Equipos de Tecnología y Dispositivos",
			Content:   "POLÍTICA DE EQUIPOS TECNOLÓGICOS: Cada empleado recibe laptop corporativa (presupuesto máximo $2000), monitor externo ($400), teclado y mouse ergonómico ($150). Los equipos se renuevan cada 4 años o por falla técnica. Está prohibido instalar software personal en equipos corporativos.",
			Category:  "tecnologia",
			Timestamp: time.Date(2024, 2, 10, 16, 45, 0, 0, time.UTC),
		},
		{
			Id:        "policy-capacitacion-desarrollo-001",
			Title:     "Política de Capacitación y Desarrollo Profesional",
			Content:   "POLÍTICA DE CAPACITACIÓN: Cada empleado tiene presupuesto anual de $2000 para capacitación y desarrollo. Certificaciones técnicas (AWS, Google Cloud, etc.) son 100% cubiertas por la empresa. Los empleados pueden solicitar hasta 40 horas anuales de tiempo laboral para capacitación.",
			Category:  "recursos-humanos",
			Timestamp: time.Date(2024, 2, 15, 13, 20, 0, 0, time.UTC),
		},
	}
}
