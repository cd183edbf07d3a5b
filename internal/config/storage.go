package config

type Storage struct {
	Database Database   `envPrefix:"DATABASE_" yaml:"database"`
	Bleve    BleveIndex `envPrefix:"BLEVE_" yaml:"bleve"`
}

type Database struct {
	DSN string `env:"DSN" envDefault:"notely.sqlite" yaml:"dsn"`
}

type BleveIndex struct {
	DSN string `env:"DSN" envDefault:"notely.bleve" yaml:"dsn"`
}
