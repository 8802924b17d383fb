package registry

// DefaultShards is used when a config asks for no shards.
const DefaultShards = 16

type Config struct {
	Shards int // default: DefaultShards
}

func NewConfig(shards int) Config {
	if shards <= 0 {
		shards = DefaultShards
	}
	return Config{
		Shards: shards,
	}
}
