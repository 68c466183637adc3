package config

import (
	"fmt"
	"time"

	"github.com/hederacore/hedera-core/pkg/client"
	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/hederacore/hedera-core/pkg/ledger"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// NodesKey is the comma separated list of nodes in the form
	// {shard}.{realm}.{account}@{host}:{port}
	NodesKey = "NODES"
	// OperatorIDKey is the account paying for transactions by default
	OperatorIDKey = "OPERATOR_ID"
	// OperatorPublicKeyKey is the hex public key of the operator. When set,
	// transactions are checked to carry the operator's signature
	OperatorPublicKeyKey = "OPERATOR_PUBLIC_KEY"
	// TransactionFeeKey is the max fee in hbars paid for a transaction, like
	// "1" or "0.5"
	TransactionFeeKey = "TRANSACTION_FEE"
	// TransactionValidDurationKey is the validity window in seconds of a
	// transaction
	TransactionValidDurationKey = "TRANSACTION_VALID_DURATION"
	// RequestTimeoutKey are the milliseconds to wait for node responses
	// before timeouts
	RequestTimeoutKey = "REQUEST_TIMEOUT"
	// MaxRequestsPerSecondKey throttles the requests made to every node, 0
	// disables throttling
	MaxRequestsPerSecondKey = "MAX_REQUESTS_PER_SECOND"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"

	maxValidDurationSeconds = 180
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("HEDERA")
	vip.AutomaticEnv()

	vip.SetDefault(NodesKey, "0.0.3@localhost:50211")
	vip.SetDefault(TransactionFeeKey, "1")
	vip.SetDefault(TransactionValidDurationKey, 120)
	vip.SetDefault(RequestTimeoutKey, 30000)
	vip.SetDefault(MaxRequestsPerSecondKey, 0)
	vip.SetDefault(LogLevelKey, 4)
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

// Validate checks the current configuration
func Validate() error {
	if _, err := client.ParseNodes(GetString(NodesKey)); err != nil {
		return fmt.Errorf("invalid nodes: %w", err)
	}

	if id := GetString(OperatorIDKey); id != "" {
		if _, err := ledger.ParseAccountID(id); err != nil {
			return fmt.Errorf("invalid operator id: %w", err)
		}
	}
	if key := GetString(OperatorPublicKeyKey); key != "" {
		if GetString(OperatorIDKey) == "" {
			return fmt.Errorf("operator public key requires the operator id to be set")
		}
		if _, err := identity.ParsePublicKey(key); err != nil {
			return fmt.Errorf("invalid operator public key: %w", err)
		}
	}

	if _, err := GetTransactionFee(); err != nil {
		return err
	}

	validDuration := GetInt(TransactionValidDurationKey)
	if validDuration <= 0 || validDuration > maxValidDurationSeconds {
		return fmt.Errorf(
			"transaction valid duration must be in range (0, %d] seconds",
			maxValidDurationSeconds,
		)
	}
	if GetInt(RequestTimeoutKey) <= 0 {
		return fmt.Errorf("request timeout must be a positive number")
	}
	if GetInt(MaxRequestsPerSecondKey) < 0 {
		return fmt.Errorf("max requests per second must not be a negative number")
	}

	level := GetInt(LogLevelKey)
	if level < int(log.PanicLevel) || level > int(log.TraceLevel) {
		return fmt.Errorf(
			"log level must be in range [%d, %d]", log.PanicLevel, log.TraceLevel,
		)
	}
	return nil
}

// GetLogLevel ...
func GetLogLevel() log.Level {
	return log.Level(GetInt(LogLevelKey))
}

// GetTransactionFee returns the configured fee in tinybars
func GetTransactionFee() (uint64, error) {
	fee, err := ledger.HbarFromString(GetString(TransactionFeeKey))
	if err != nil {
		return 0, fmt.Errorf("invalid transaction fee: %w", err)
	}
	if fee <= 0 {
		return 0, fmt.Errorf("transaction fee must be a positive amount of hbars")
	}
	return uint64(fee.Tinybars()), nil
}

// GetNodes parses the configured node list
func GetNodes() ([]client.Node, error) {
	return client.ParseNodes(GetString(NodesKey))
}

// GetOperator returns the configured operator, or nil if not set
func GetOperator() (*client.Operator, error) {
	id := GetString(OperatorIDKey)
	if id == "" {
		return nil, nil
	}
	accountID, err := ledger.ParseAccountID(id)
	if err != nil {
		return nil, err
	}

	operator := &client.Operator{AccountID: accountID}
	if key := GetString(OperatorPublicKeyKey); key != "" {
		publicKey, err := identity.ParsePublicKey(key)
		if err != nil {
			return nil, err
		}
		operator.PublicKey = &publicKey
	}
	return operator, nil
}

// ClientOpts validates the configuration and turns it into the options
// to build a client.Client with
func ClientOpts() (client.Opts, error) {
	if err := Validate(); err != nil {
		return client.Opts{}, err
	}

	nodes, err := GetNodes()
	if err != nil {
		return client.Opts{}, err
	}
	operator, err := GetOperator()
	if err != nil {
		return client.Opts{}, err
	}
	fee, err := GetTransactionFee()
	if err != nil {
		return client.Opts{}, err
	}

	return client.Opts{
		Nodes:          nodes,
		Operator:       operator,
		TransactionFee: fee,
		ValidDuration: time.Duration(GetInt(TransactionValidDurationKey)) *
			time.Second,
		RequestTimeout: time.Duration(GetInt(RequestTimeoutKey)) *
			time.Millisecond,
		MaxRequestsPerSecond: GetInt(MaxRequestsPerSecondKey),
	}, nil
}
