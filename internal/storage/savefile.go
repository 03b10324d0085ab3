package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/CryptoBros-oai/DUUM/internal/entity"
	"github.com/CryptoBros-oai/DUUM/internal/vision"
	"github.com/CryptoBros-oai/DUUM/internal/world"
	"github.com/CryptoBros-oai/DUUM/pkg/logger"
)

const (
	MagicHeader string = `DUUM` // 4 байта
	Version1    uint32 = 1
)

// SaveFileHeader - точное представление заголовка файла в памяти.
// binary.Write пишет его целиком: тут только массивы и числа.
type SaveFileHeader struct {
	Magic     [4]byte
	Version   uint32
	Tick      uint64
	Timestamp int64
}

// SaveGame - полный снапшот симуляции. Тело файла - этот JSON,
// сжатый zstd: сетка ключей и туман войны жмутся в разы.
type SaveGame struct {
	Tick       uint64          `json:"tick"`
	Grid       world.Snapshot  `json:"grid"`
	Discovered []vision.Cell   `json:"discovered"`
	Entities   []entity.Record `json:"entities"`
}

// SaveService пишет и читает файлы сохранений.
type SaveService struct {
	SaveDir string
}

func NewSaveService(dir string) *SaveService {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &SaveService{SaveDir: dir}
}

// Save записывает снапшот в новый файл каталога сохранений.
func (s *SaveService) Save(game SaveGame) (string, error) {
	filename := fmt.Sprintf("save_%d_tick%d.duum", time.Now().Unix(), game.Tick)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := writeBinary(f, game); err != nil {
		f.Close()
		return "", err
	}
	// Ошибка закрытия - это недописанный сейв, наружу как провал записи.
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close save file: %w", err)
	}

	logger.Log.WithField("path", path).Info("Save file written")
	return path, nil
}

// Load читает снапшот из файла сохранения.
func (s *SaveService) Load(path string) (SaveGame, error) {
	f, err := os.Open(path)
	if err != nil {
		return SaveGame{}, err
	}
	defer f.Close()

	return readBinary(f)
}

func writeBinary(w io.Writer, game SaveGame) error {
	header := SaveFileHeader{
		Version:   Version1,
		Tick:      game.Tick,
		Timestamp: time.Now().Unix(),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to init compressor: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(game); err != nil {
		enc.Close()
		return fmt.Errorf("failed to encode save: %w", err)
	}
	return enc.Close()
}

func readBinary(r io.Reader) (SaveGame, error) {
	var header SaveFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return SaveGame{}, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return SaveGame{}, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return SaveGame{}, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return SaveGame{}, fmt.Errorf("failed to init decompressor: %w", err)
	}
	defer dec.Close()

	var game SaveGame
	if err := json.NewDecoder(dec).Decode(&game); err != nil {
		return SaveGame{}, fmt.Errorf("failed to decode save: %w", err)
	}
	if game.Tick != header.Tick {
		// Заголовок дублирует тик для быстрого листинга сейвов;
		// расхождение - признак битого файла.
		return SaveGame{}, fmt.Errorf("tick mismatch: header %d, body %d", header.Tick, game.Tick)
	}
	return game, nil
}
