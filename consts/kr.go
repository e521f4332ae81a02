package consts

import (
	"fmt"
	"strings"
)

var KrProvinceFullName map[string]string

func init() {
	KrProvinceFullName = make(map[string]string)

	KrProvinceFullName["서울"] = "서울특별시"
	KrProvinceFullName["서울시"] = "서울특별시"
	KrProvinceFullName["부산"] = "부산광역시"
	KrProvinceFullName["부산시"] = "부산광역시"
	KrProvinceFullName["대구"] = "대구광역시"
	KrProvinceFullName["대구시"] = "대구광역시"
	KrProvinceFullName["인천"] = "인천광역시"
	KrProvinceFullName["인천시"] = "인천광역시"
	KrProvinceFullName["광주"] = "광주광역시"
	KrProvinceFullName["광주시"] = "광주광역시"
	KrProvinceFullName["대전"] = "대전광역시"
	KrProvinceFullName["대전시"] = "대전광역시"
	KrProvinceFullName["울산"] = "울산광역시"
	KrProvinceFullName["울산시"] = "울산광역시"
	KrProvinceFullName["세종"] = "세종특별자치시"
	KrProvinceFullName["세종시"] = "세종특별자치시"
	KrProvinceFullName["경기"] = "경기도"
	KrProvinceFullName["강원"] = "강원특별자치도"
	KrProvinceFullName["강원도"] = "강원특별자치도"
	KrProvinceFullName["충북"] = "충청북도"
	KrProvinceFullName["충남"] = "충청남도"
	KrProvinceFullName["전북"] = "전북특별자치도"
	KrProvinceFullName["전라북도"] = "전북특별자치도"
	KrProvinceFullName["전남"] = "전라남도"
	KrProvinceFullName["경북"] = "경상북도"
	KrProvinceFullName["경남"] = "경상남도"
	KrProvinceFullName["제주"] = "제주특별자치도"
	KrProvinceFullName["제주도"] = "제주특별자치도"
}

// KrProvince - expand a short province name, returns the input if it is
// already a full name or unknown
func KrProvince(name string) string {
	if full, ok := KrProvinceFullName[name]; ok {
		return full
	}
	return name
}

// Address is a Korean road address split into the parts geocoding expects.
type Address struct {
	City     string
	District string
	Street   string
}

// SplitAddress splits "city district street..." on whitespace.
func SplitAddress(address string) (Address, error) {
	parts := strings.Fields(address)
	if len(parts) < 2 {
		return Address{}, fmt.Errorf("%q is not a city district address", address)
	}

	return Address{
		City:     parts[0],
		District: parts[1],
		Street:   strings.Join(parts[2:], " "),
	}, nil
}
