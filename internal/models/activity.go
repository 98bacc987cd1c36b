package models

// Activity describes a station visitors can give feedback about.
// ID doubles as the QR code printed at the station.
type Activity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var Activities = []Activity{
	{ID: "QR001", Name: "Robotique", Description: "Programmation et démonstration de robots"},
	{ID: "QR002", Name: "Astronomie", Description: "Observation des étoiles et planètes"},
	{ID: "QR003", Name: "Biotechnologie", Description: "Expériences avec l'ADN et les cellules"},
	{ID: "QR004", Name: "IA & Machine Learning", Description: "Intelligence artificielle et apprentissage automatique"},
}

func ActivityNames() []string {
	names := make([]string, len(Activities))
	for i, a := range Activities {
		names[i] = a.Name
	}
	return names
}
