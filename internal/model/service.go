package model

// Service услуга салона из статического каталога
type Service struct {
	Name  string `json:"name" yaml:"name"`
	Price int    `json:"price" yaml:"price"` // в рублях
}
