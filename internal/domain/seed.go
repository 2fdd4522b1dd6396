package domain

// TeamMembers is the roster offered by the task form. Owners are not
// restricted to it.
var TeamMembers = []string{
	"Steven Díaz",
	"Sofia Sandoval",
	"Stephanie Delgago",
	"Dayana Portillo",
	"Diana Arteaga",
}

// SeedTasks returns the demo Active collection.
func SeedTasks() []Task {
	return []Task{
		{ID: "1", Name: "Reporte Mensual Q1", Owner: "Steven Díaz", AssignedCount: 150, WorkedCount: 120, Country: CountrySV, Priority: PriorityHigh, StartDate: "2024-02-01", DueDate: "2024-02-15", Status: StatusInProgress},
		{ID: "2", Name: "Auditoría Inventario", Owner: "Sofia Sandoval", AssignedCount: 80, WorkedCount: 0, Country: CountryGT, Priority: PriorityMedium, StartDate: "2024-02-05", DueDate: "2024-02-10", Status: StatusPending},
		{ID: "3", Name: "Carga de Catálogo", Owner: "Stephanie Delgago", AssignedCount: 200, WorkedCount: 50, Country: CountryCR, Priority: PriorityHigh, StartDate: "2024-02-08", DueDate: "2024-02-14", Status: StatusInProgress},
		{ID: "4", Name: "Soporte Regional", Owner: "Dayana Portillo", AssignedCount: 100, WorkedCount: 0, Country: CountryRegional, Priority: PriorityLow, StartDate: "2024-01-15", DueDate: "2024-01-20", Status: StatusPending},
		{ID: "5", Name: "Actualización Precios", Owner: "Diana Arteaga", AssignedCount: 300, WorkedCount: 250, Country: CountrySV, Priority: PriorityMedium, StartDate: "2024-02-20", DueDate: "2024-02-28", Status: StatusInProgress},
	}
}

// SeedHistory returns the demo History collection.
func SeedHistory() []Task {
	return []Task{
		{ID: "h1", Name: "Limpieza Datos 2023", Owner: "Steven Díaz", AssignedCount: 100, WorkedCount: 100, Country: CountryGT, Priority: PriorityMedium, StartDate: "2024-01-01", DueDate: "2024-01-05", Status: StatusDone},
		{ID: "h2", Name: "Migración DB", Owner: "Sofia Sandoval", AssignedCount: 50, WorkedCount: 50, Country: CountryCR, Priority: PriorityHigh, StartDate: "2024-01-10", DueDate: "2024-01-12", Status: StatusDone},
	}
}
