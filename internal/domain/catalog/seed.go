package catalog

import "github.com/BruksfildServices01/agendai-scheduler/internal/models"

// Catálogo inicial carregado quando as tabelas estão vazias.
func DefaultServices() []models.Service {
	return []models.Service{
		{ID: 1, Name: "Corte Masculino", Duration: 30, Price: 35.0},
		{ID: 2, Name: "Barba", Duration: 20, Price: 20.0},
		{ID: 3, Name: "Corte + Barba", Duration: 50, Price: 50.0},
	}
}

func DefaultProfessionals() []models.Professional {
	return []models.Professional{
		{ID: 1, Name: "João"},
		{ID: 2, Name: "Carlos"},
	}
}
