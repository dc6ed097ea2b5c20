package models

// FyyurModels lists the tables migrated by the listings site.
func FyyurModels() []interface{} {
	return []interface{}{&Venue{}, &Artist{}, &Show{}}
}

// TriviaModels lists the tables migrated by the trivia API.
func TriviaModels() []interface{} {
	return []interface{}{&Role{}, &User{}, &Category{}, &Question{}}
}
