package provider

import (
	"context"
	"testing"

	"wallet-ledger/config"
	"wallet-ledger/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bitcoinHot() config.PrimaryWalletConfig {
	return config.PrimaryWalletConfig{
		Blockchain: "bitcoin",
		Name:       "hot",
		Address:    "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq",
		Network:    "mainnet",
		Balance:    d("1.5"),
		Fee:        d("0.0001"),
	}
}

func TestStaticProvider_BalanceAndFee(t *testing.T) {
	p, err := NewStaticProvider(bitcoinHot(), zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	bal, err := p.GetBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.5", bal.String())

	fee, err := p.EstimateFee(ctx, "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", d("0.1"))
	require.NoError(t, err)
	assert.Equal(t, "0.0001", fee.String())
}

func TestStaticProvider_SendDeductsAmountAndFee(t *testing.T) {
	p, err := NewStaticProvider(bitcoinHot(), zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	txID, err := p.SendTransaction(ctx, "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", d("0.5"), ports.SendOptions{Fee: d("0.0001")})
	require.NoError(t, err)
	assert.NotEmpty(t, txID)

	bal, _ := p.GetBalance(ctx)
	assert.Equal(t, "0.9999", bal.String())

	_, err = p.SendTransaction(ctx, "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", d("1"), ports.SendOptions{})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestStaticProvider_VerifyAddress(t *testing.T) {
	tests := []struct {
		name    string
		network string
		address string
		valid   bool
	}{
		{"mainnet p2pkh", "mainnet", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", true},
		{"mainnet bech32", "mainnet", "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq", true},
		{"testnet address on mainnet", "mainnet", "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx", false},
		{"testnet bech32", "testnet3", "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx", true},
		{"garbage", "mainnet", "not-an-address", false},
		{"empty", "mainnet", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := bitcoinHot()
			cfg.Network = tt.network
			cfg.Address = ""
			p, err := NewStaticProvider(cfg, zerolog.Nop())
			require.NoError(t, err)

			ok, err := p.VerifyAddress(context.Background(), tt.address)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestStaticProvider_OtherChainsShapeCheckOnly(t *testing.T) {
	p, err := NewStaticProvider(config.PrimaryWalletConfig{Blockchain: "litecoin", Name: "hot"}, zerolog.Nop())
	require.NoError(t, err)

	ok, _ := p.VerifyAddress(context.Background(), "ltc1qexampleaddress")
	assert.True(t, ok)
	ok, _ = p.VerifyAddress(context.Background(), "has space")
	assert.False(t, ok)
}

func TestNewStaticProvider_RejectsBadConfig(t *testing.T) {
	cfg := bitcoinHot()
	cfg.Network = "moonnet"
	_, err := NewStaticProvider(cfg, zerolog.Nop())
	assert.Error(t, err)

	cfg = bitcoinHot()
	cfg.Network = "testnet3"
	_, err = NewStaticProvider(cfg, zerolog.Nop())
	assert.Error(t, err, "mainnet address configured on testnet")
}

func TestRegistry_FromConfig(t *testing.T) {
	ltc := config.PrimaryWalletConfig{Blockchain: "litecoin", Name: "hot"}
	cold := bitcoinHot()
	cold.Name = "cold"

	reg, err := NewRegistryFromConfig([]config.PrimaryWalletConfig{ltc, bitcoinHot(), cold}, zerolog.Nop())
	require.NoError(t, err)

	p, ok := reg.Get("bitcoin", "hot")
	require.True(t, ok)
	assert.Equal(t, "hot", p.Name())

	_, ok = reg.Get("bitcoin", "warm")
	assert.False(t, ok)

	var names []string
	for _, p := range reg.List() {
		names = append(names, p.Blockchain()+"/"+p.Name())
	}
	assert.Equal(t, []string{"bitcoin/cold", "bitcoin/hot", "litecoin/hot"}, names)
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	_, err := NewRegistryFromConfig([]config.PrimaryWalletConfig{bitcoinHot(), bitcoinHot()}, zerolog.Nop())
	assert.Error(t, err)
}
