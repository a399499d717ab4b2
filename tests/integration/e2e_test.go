package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestEndToEndWithRealBinary(t *testing.T) {
	// Создаем минимальный тестовый JSON-файл экспорта
	testData := `{
		"users": [
			{"id": "U1", "name": "bobby", "profile": {"real_name": "Bobby Tables"}}
		],
		"channels": [],
		"messages": [
			{"ts": "1.0", "user": "U1", "text": "*hello*"}
		]
	}`

	// Записываем тестовые данные во временный файл
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test_export.json")
	if err := os.WriteFile(testFile, []byte(testData), 0644); err != nil {
		t.Fatalf("Не удалось записать тестовый файл: %v", err)
	}

	// Собираем бинарный файл
	binaryPath := filepath.Join(tempDir, "test_binary")
	buildCmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/fetch")
	buildCmd.Dir = "../.."
	if err := buildCmd.Run(); err != nil {
		t.Skipf("Пропускаем сквозной тест: не удалось собрать бинарный файл: %v", err)
	}

	// Запускаем конвертацию локального файла без обращения к Slack API
	runCmd := exec.Command(binaryPath, "-file", testFile)
	runCmd.Dir = tempDir
	output, err := runCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Бинарный файл завершился с ошибкой: %v\n%s", err, output)
	}

	if !strings.Contains(string(output), "**hello**") {
		t.Errorf("Ожидалось '**hello**' в выводе, получено:\n%s", output)
	}
}
