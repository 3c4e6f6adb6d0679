package catalog

import "sparcel-journey-service/internal/domain"

// Partner points used when no catalog file is configured.
var builtinPoints = []domain.Location{
	// City centre
	{Lat: -33.9249, Lng: 18.4241, Name: "Long Street Hub", Address: "123 Long Street, Cape Town City Centre", BusinessHours: "8AM - 9PM", Rating: 4.5},
	{Lat: -33.9271, Lng: 18.4179, Name: "Kloof Street Point", Address: "89 Kloof Street, Gardens", BusinessHours: "8AM - 7PM", Rating: 4.8},
	{Lat: -33.9257, Lng: 18.4178, Name: "Gardens Center", Address: "12 Queen Victoria Street, City Centre", BusinessHours: "9AM - 6PM", Rating: 4.4},
	// Atlantic seaboard
	{Lat: -33.9169, Lng: 18.4167, Name: "Tamboerskloof Hub", Address: "45 Tamboerskloof Road", BusinessHours: "8AM - 8PM", Rating: 4.7},
	{Lat: -33.9351, Lng: 18.4097, Name: "Sea Point Center", Address: "156 Main Road, Sea Point", BusinessHours: "8AM - 9PM", Rating: 4.9},
	{Lat: -33.9308, Lng: 18.4075, Name: "Three Anchor Bay Point", Address: "34 Main Road, Three Anchor Bay", BusinessHours: "7AM - 8PM", Rating: 4.6},
	// Southern suburbs
	{Lat: -33.9764, Lng: 18.4661, Name: "Observatory Store", Address: "185 Lower Main Road, Observatory", BusinessHours: "8AM - 8PM", Rating: 4.7},
	{Lat: -33.9806, Lng: 18.4679, Name: "Salt River Hub", Address: "73 Albert Road, Salt River", BusinessHours: "7AM - 7PM", Rating: 4.5},
	// Woodstock
	{Lat: -33.9278, Lng: 18.4378, Name: "Woodstock Point", Address: "78 Albert Road, Woodstock", BusinessHours: "7AM - 7PM", Rating: 4.6},
	{Lat: -33.9265, Lng: 18.4397, Name: "Woodstock Exchange", Address: "66 Albert Road, Woodstock", BusinessHours: "8AM - 6PM", Rating: 4.8},
	// Table View
	{Lat: -33.8213, Lng: 18.4897, Name: "Table View Center", Address: "123 Marine Drive, Table View", BusinessHours: "8AM - 8PM", Rating: 4.7},
	{Lat: -33.8156, Lng: 18.4951, Name: "Blouberg Point", Address: "45 Marine Circle, Blouberg", BusinessHours: "7AM - 9PM", Rating: 4.9},
	// Century City
	{Lat: -33.8913, Lng: 18.5129, Name: "Century City Hub", Address: "12 Century Boulevard, Century City", BusinessHours: "9AM - 7PM", Rating: 4.8},
	{Lat: -33.8896, Lng: 18.5153, Name: "Canal Walk Point", Address: "Canal Walk Shopping Centre", BusinessHours: "9AM - 9PM", Rating: 4.7},
	// Claremont
	{Lat: -33.9847, Lng: 18.4695, Name: "Claremont Center", Address: "23 Main Road, Claremont", BusinessHours: "8AM - 8PM", Rating: 4.6},
}
