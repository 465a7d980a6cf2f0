package contacts

// SeedContacts 演示用的初始联系人
func SeedContacts() []Contact {
	return []Contact{
		{ID: "abc-123", Name: "Henk", Street: "Piet Smitstraat"},
		{ID: "def-456", Name: "Wim", Street: "Groningerstraatweg"},
	}
}

// SeedStore 以 SeedContacts 构建的存储
func SeedStore() Store {
	s, err := NewStore(SeedContacts()...)
	if err != nil {
		panic(err)
	}
	return s
}
