package model

// PoolStatsDocument is the periodically refreshed read model of a pool.
type PoolStatsDocument struct {
	ID                     string `bson:"_id" json:"pool_id"`                                     // Pool id
	PoolValue              string `bson:"pool_value" json:"pool_value"`                           // Weighted collateral value in wei
	StablecoinSupply       string `bson:"stablecoin_supply" json:"stablecoin_supply"`             // Minted supply in wei
	CollateralizationRatio string `bson:"collateralization_ratio" json:"collateralization_ratio"` // Percent, max uint256 while supply is zero
	MemberCount            int    `bson:"member_count" json:"member_count"`
	LastUpdated            int64  `bson:"last_updated" json:"last_updated"` // Unix timestamp of last update
}
