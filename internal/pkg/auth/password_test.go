package auth

import "testing"

func TestPasswordManager_HashAndVerify(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	hash, err := manager.HashPassword("Sunrise42")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "Sunrise42" {
		t.Fatal("expected hash to differ from the password")
	}

	if err := manager.VerifyPassword("Sunrise42", hash); err != nil {
		t.Errorf("VerifyPassword() error = %v", err)
	}
	if err := manager.VerifyPassword("Sunset42", hash); err == nil {
		t.Error("expected error for wrong password")
	}
}

func TestPasswordManager_ValidatePassword(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Sunrise42", false},
		{"too short", "Ab1", true},
		{"no uppercase", "sunrise42", true},
		{"no lowercase", "SUNRISE42", true},
		{"no number", "SunriseDay", true},
		{"long but valid", "Sunrise42" + "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manager.ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}
