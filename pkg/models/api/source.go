package api

type Source struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
