package scraps

// Cache key families. Both embed the owner uid so an entry can never be
// served to a different tenant than the one it was populated for.
//
//	scrap:all:{ownerUID}     serialized list of all scraps for an owner
//	scrap:{uid}:{ownerUID}   one serialized scrap, scoped by owner
func allKey(ownerUID string) string {
	return "scrap:all:" + ownerUID
}

func oneKey(uid, ownerUID string) string {
	return "scrap:" + uid + ":" + ownerUID
}
